package domain

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// EmployeeBracket is the company-size bracket picked on the contact form.
type EmployeeBracket string

const (
	EmployeesUnset  EmployeeBracket = ""
	Employees1To5   EmployeeBracket = "1-5"
	Employees6To10  EmployeeBracket = "6-10"
	Employees11To20 EmployeeBracket = "11-20"
	Employees21To30 EmployeeBracket = "21-30"
	EmployeesOver30 EmployeeBracket = "30+"
)

// EmployeeBrackets lists the selectable brackets in display order.
func EmployeeBrackets() []EmployeeBracket {
	return []EmployeeBracket{Employees1To5, Employees6To10, Employees11To20, Employees21To30, EmployeesOver30}
}

// Valid reports whether b is unset or one of the known brackets.
func (b EmployeeBracket) Valid() bool {
	if b == EmployeesUnset {
		return true
	}
	for _, known := range EmployeeBrackets() {
		if b == known {
			return true
		}
	}
	return false
}

// Module is an entry of the interest catalog. The value is what the relay
// receives, so it stays in French regardless of the visitor's language.
type Module string

const (
	ModuleReports    Module = "Rapports d'intervention"
	ModulePlanning   Module = "Gestion de planning"
	ModuleStock      Module = "Gestion de stock"
	ModuleCustomers  Module = "Suivi clients"
	ModuleEquipment  Module = "Suivi matériel"
	ModuleIntranet   Module = "Intranet"
	ModuleAutomation Module = "Automatisation"
	ModuleOther      Module = "Autre"
)

// NoModulesSelected is sent in place of the module list when none was ticked.
const NoModulesSelected = "Aucun module sélectionné"

// ModuleCatalog lists every module in display order.
func ModuleCatalog() []Module {
	return []Module{
		ModuleReports,
		ModulePlanning,
		ModuleStock,
		ModuleCustomers,
		ModuleEquipment,
		ModuleIntranet,
		ModuleAutomation,
		ModuleOther,
	}
}

func moduleRank(m Module) int {
	for i, known := range ModuleCatalog() {
		if m == known {
			return i
		}
	}
	return -1
}

// Valid reports whether m belongs to the catalog.
func (m Module) Valid() bool {
	return moduleRank(m) >= 0
}

// ModuleSet is a duplicate-free selection of modules. Iteration follows
// catalog order so the joined text is stable.
type ModuleSet struct {
	items []Module
}

// NewModuleSet builds a set from modules, dropping duplicates and entries
// outside the catalog.
func NewModuleSet(modules ...Module) ModuleSet {
	seen := make(map[Module]struct{}, len(modules))
	items := make([]Module, 0, len(modules))
	for _, m := range modules {
		if !m.Valid() {
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		items = append(items, m)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return moduleRank(items[i]) < moduleRank(items[j])
	})
	return ModuleSet{items: items}
}

// Len returns the number of selected modules.
func (s ModuleSet) Len() int { return len(s.items) }

// Contains reports whether m is selected.
func (s ModuleSet) Contains(m Module) bool {
	for _, item := range s.items {
		if item == m {
			return true
		}
	}
	return false
}

// Modules returns a copy of the selection.
func (s ModuleSet) Modules() []Module {
	out := make([]Module, len(s.items))
	copy(out, s.items)
	return out
}

// Joined renders the selection as "a, b, c", or NoModulesSelected.
func (s ModuleSet) Joined() string {
	if len(s.items) == 0 {
		return NoModulesSelected
	}
	parts := make([]string, len(s.items))
	for i, m := range s.items {
		parts[i] = string(m)
	}
	return strings.Join(parts, ", ")
}

// ContactPreference is how the requester wants to be called back.
type ContactPreference string

const (
	PreferenceUnset ContactPreference = ""
	PreferencePhone ContactPreference = "Téléphone"
	PreferenceEmail ContactPreference = "Email"
	PreferenceVideo ContactPreference = "Visio"
)

// ContactPreferences lists the selectable preferences in display order.
func ContactPreferences() []ContactPreference {
	return []ContactPreference{PreferencePhone, PreferenceEmail, PreferenceVideo}
}

// Valid reports whether p is unset or one of the known preferences.
func (p ContactPreference) Valid() bool {
	if p == PreferenceUnset {
		return true
	}
	for _, known := range ContactPreferences() {
		if p == known {
			return true
		}
	}
	return false
}

// ContactFields holds the raw values of the contact form as submitted.
type ContactFields struct {
	Name              string   `json:"name" form:"name" validate:"required"`
	Company           string   `json:"company" form:"company" validate:"required"`
	Email             string   `json:"email" form:"email" validate:"required,relay_email"`
	Phone             string   `json:"phone" form:"phone" validate:"required"`
	Employees         string   `json:"employees" form:"employees" validate:"omitempty,employee_bracket"`
	Modules           []string `json:"modules" form:"modules" validate:"dive,catalog_module"`
	Description       string   `json:"description" form:"description"`
	ContactPreference string   `json:"contactPreference" form:"contactPreference" validate:"omitempty,contact_preference"`
}

// ContactInquiry is a validated submission, ready to be sent to the relay.
type ContactInquiry struct {
	Name              string
	Company           string
	Email             string
	Phone             string
	Employees         EmployeeBracket
	Modules           ModuleSet
	Description       string
	ContactPreference ContactPreference
}

// FieldErrorKind classifies why a single field was rejected.
type FieldErrorKind string

const (
	RequiredFieldMissing FieldErrorKind = "RequiredFieldMissing"
	InvalidFormat        FieldErrorKind = "InvalidFormat"
)

// ValidationErrors maps wire field names to the reason they were rejected.
type ValidationErrors map[string]FieldErrorKind

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = fmt.Sprintf("%s: %s", field, v[field])
	}
	return "invalid contact inquiry: " + strings.Join(parts, ", ")
}

// RelayPayload is the flat body posted to the form relay.
type RelayPayload struct {
	AccessKey         string `json:"access_key"`
	Subject           string `json:"subject"`
	FromName          string `json:"from_name"`
	Name              string `json:"name"`
	Company           string `json:"company"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Employees         string `json:"employees"`
	Modules           string `json:"modules"`
	Description       string `json:"description"`
	ContactPreference string `json:"contactPreference"`
}

// ContactUsecase validates and forwards contact form submissions.
type ContactUsecase interface {
	// Validate trims and checks the raw fields. On failure the error is a
	// ValidationErrors.
	Validate(fields ContactFields) (*ContactInquiry, error)
	// Submit performs exactly one relay call and reports how it ended.
	Submit(ctx context.Context, inquiry *ContactInquiry) SubmissionOutcome
}
