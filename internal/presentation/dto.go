package presentation

import (
	"github.com/zjrosen/poptart/internal/popup"
	"github.com/zjrosen/poptart/internal/ui/popups"
)

// RegistrationDTO represents a popup registration for presentation.
type RegistrationDTO struct {
	Name        string   `json:"name,omitempty" yaml:"name,omitempty"`
	ViewModel   string   `json:"view_model" yaml:"view_model"`
	View        string   `json:"view" yaml:"view"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Arguments   []string `json:"arguments" yaml:"arguments"` // always present, empty when none
}

// FromEntry converts a registry entry to a DTO. Stock popups carry their
// command-line name, description and argument keys.
func FromEntry(e popup.Entry) RegistrationDTO {
	dto := RegistrationDTO{
		ViewModel: e.ViewModel.String(),
		View:      e.View.String(),
		Arguments: []string{},
	}
	if stock, ok := popups.ByViewModel(e.ViewModel); ok {
		dto.Name = stock.Name
		dto.Description = stock.Description
		dto.Arguments = append(dto.Arguments, stock.Arguments...)
	}
	return dto
}

// FromRegistry converts every entry of reg, in registry order.
func FromRegistry(reg *popup.Registry) []RegistrationDTO {
	entries := reg.Entries()
	dtos := make([]RegistrationDTO, len(entries))
	for i, e := range entries {
		dtos[i] = FromEntry(e)
	}
	return dtos
}
