// Package order builds the consolidated order list of a configuration and
// exports it.
package order

import "github.com/teletec/intercom-configurator/internal/domain"

// Line is one row of the order list
type Line struct {
	ProductNumber domain.ProductNumber `json:"product_number" msgpack:"product_number"`
	Name          string               `json:"name" msgpack:"name"`
	Quantity      int                  `json:"quantity" msgpack:"quantity"`
}

// PanelSummary describes one panel in the order
type PanelSummary struct {
	ID                int                     `json:"id" msgpack:"id"`
	Label             string                  `json:"label" msgpack:"label"`
	Modules           []string                `json:"modules" msgpack:"modules"`
	Budget            int                     `json:"budget" msgpack:"budget"`
	InstallationType  domain.InstallationType `json:"installation_type" msgpack:"installation_type"`
	IsVandalResistant bool                    `json:"is_vandal_resistant" msgpack:"is_vandal_resistant"`
}

// Order is the final configuration summary handed to the customer
type Order struct {
	Technology        domain.Technology       `json:"system_technology" msgpack:"system_technology"`
	PanelType         domain.PanelType        `json:"panel_type" msgpack:"panel_type"`
	InstallationType  domain.InstallationType `json:"installation_type" msgpack:"installation_type"`
	IsVandalResistant bool                    `json:"is_vandal_resistant" msgpack:"is_vandal_resistant"`
	NumberOfPanels    int                     `json:"number_of_panels" msgpack:"number_of_panels"`
	SameConfig        bool                    `json:"same_config" msgpack:"same_config"`
	Panels            []PanelSummary          `json:"panels" msgpack:"panels"`
	Products          []Line                  `json:"products" msgpack:"products"`
}

// Input is everything BuildOrder needs from a session
type Input struct {
	Technology        domain.Technology
	PanelType         domain.PanelType
	InstallationType  domain.InstallationType
	IsVandalResistant bool
	SameConfig        bool
	Panels            []domain.Panel
	Accessories       []domain.LineItem
	Receivers         domain.Receivers
	PowerSupplies     []domain.LineItem
}
