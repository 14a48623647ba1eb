// Package view derives the filtered and sorted host list shown to the user
// from the canonical session state. Every function here is pure: inputs are
// never modified and no derivation can fail on well-formed hosts.
package view

import (
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/anstrom/scanview/internal/classify"
	"github.com/anstrom/scanview/internal/errors"
)

// Mode combines active tag filters.
type Mode string

const (
	ModeOr  Mode = "or"
	ModeAnd Mode = "and"
)

// SortKey selects the field hosts are ordered by.
type SortKey string

const (
	SortNone      SortKey = "none"
	SortIP        SortKey = "ip"
	SortHostname  SortKey = "hostname"
	SortPortCount SortKey = "portCount"
)

// Direction is the sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// State is everything the user controls about the host list.
type State struct {
	Filters []classify.Category `json:"filters" yaml:"filters" mapstructure:"filters" validate:"dive,category"`
	Mode    Mode                `json:"mode" yaml:"mode" mapstructure:"mode" validate:"omitempty,oneof=and or"`
	Query   string              `json:"query" yaml:"query" mapstructure:"query" validate:"max=256"`
	SortKey SortKey             `json:"sort_key" yaml:"sort_key" mapstructure:"sort_key" validate:"omitempty,oneof=none ip hostname portCount"`
	SortDir Direction           `json:"sort_dir" yaml:"sort_dir" mapstructure:"sort_dir" validate:"omitempty,oneof=asc desc"`
}

// DefaultState shows every host in canonical order.
func DefaultState() State {
	return State{
		Mode:    ModeOr,
		SortKey: SortNone,
		SortDir: Asc,
	}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func stateValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("category", func(fl validator.FieldLevel) bool {
			if fl.Field().Kind() != reflect.String {
				return false
			}
			_, err := classify.ParseCategory(fl.Field().String())
			return err == nil
		})
	})
	return validate
}

// Validate checks the state against the known modes, keys and categories.
func (s State) Validate() error {
	if err := stateValidator().Struct(s); err != nil {
		return errors.WrapConfigError(errors.CodeValidation, "Invalid view state", err)
	}
	return nil
}

// ToggleSort selects key. Selecting the current key again flips the
// direction; any other key starts ascending.
func (s State) ToggleSort(key SortKey) State {
	if s.SortKey == key {
		if s.SortDir == Desc {
			s.SortDir = Asc
		} else {
			s.SortDir = Desc
		}
		return s
	}
	s.SortKey = key
	s.SortDir = Asc
	return s
}

// WithFilter returns a copy of s with c toggled in the active filters.
func (s State) WithFilter(c classify.Category) State {
	filters := make([]classify.Category, 0, len(s.Filters)+1)
	found := false
	for _, f := range s.Filters {
		if f == c {
			found = true
			continue
		}
		filters = append(filters, f)
	}
	if !found {
		filters = append(filters, c)
	}
	s.Filters = filters
	return s
}
