package settings

import "fmt"

// InstructionPage names a page that shows a one-time instructions overlay
type InstructionPage string

const (
	PageHome        InstructionPage = "home"
	PagePanelConfig InstructionPage = "panel_config"
	PageReceivers   InstructionPage = "receivers"
)

// Pages lists every instruction page in navigation order
var Pages = []InstructionPage{PageHome, PagePanelConfig, PageReceivers}

// instructionKeys maps pages to their settings keys. The version suffix lets a
// rewritten overlay be shown again without migrating old values.
var instructionKeys = map[InstructionPage]string{
	PageHome:        "seen_home_instructions_v1",
	PagePanelConfig: "seen_panel_config_instructions_v1",
	PageReceivers:   "seen_receiver_instructions_v1",
}

// SettingDescriptions documents the keys this service writes
var SettingDescriptions = map[string]string{
	"seen_home_instructions_v1":         "Home page instructions were dismissed",
	"seen_panel_config_instructions_v1": "Panel configuration instructions were dismissed",
	"seen_receiver_instructions_v1":     "Receiver page instructions were dismissed",
}

// Key returns the settings key of the page
func (p InstructionPage) Key() (string, error) {
	key, ok := instructionKeys[p]
	if !ok {
		return "", fmt.Errorf("unknown instruction page %q", string(p))
	}
	return key, nil
}

// InstructionsStatus reports which overlays were already dismissed
type InstructionsStatus map[InstructionPage]bool

// SettingUpdate is the request body for updating a raw setting
type SettingUpdate struct {
	Value string `json:"value"`
}

// InstructionUpdate is the request body for PUT /api/settings/instructions/{page}
type InstructionUpdate struct {
	Seen *bool `json:"seen"`
}
