package locale

import "tracefield-site/internal/domain"

var moduleKeys = map[domain.Module][2]Key{
	domain.ModuleReports:    {KeyModuleReportsTitle, KeyModuleReportsBody},
	domain.ModulePlanning:   {KeyModulePlanningTitle, KeyModulePlanningBody},
	domain.ModuleStock:      {KeyModuleStockTitle, KeyModuleStockBody},
	domain.ModuleCustomers:  {KeyModuleCustomersTitle, KeyModuleCustomersBody},
	domain.ModuleEquipment:  {KeyModuleEquipmentTitle, KeyModuleEquipmentBody},
	domain.ModuleIntranet:   {KeyModuleIntranetTitle, KeyModuleIntranetBody},
	domain.ModuleAutomation: {KeyModuleAutomationTitle, KeyModuleAutomationBody},
	domain.ModuleOther:      {KeyModuleOtherTitle, ""},
}

// ModuleTitleKey is the display name of m.
func ModuleTitleKey(m domain.Module) Key {
	return moduleKeys[m][0]
}

// ModuleBodyKey is the marketing blurb of m. "Other" has none.
func ModuleBodyKey(m domain.Module) Key {
	return moduleKeys[m][1]
}

// PreferenceKey is the display label of a contact preference.
func PreferenceKey(p domain.ContactPreference) Key {
	switch p {
	case domain.PreferencePhone:
		return KeyPreferencePhone
	case domain.PreferenceEmail:
		return KeyPreferenceEmail
	case domain.PreferenceVideo:
		return KeyPreferenceVideo
	}
	return ""
}

// FieldErrorKey picks the message shown next to a rejected field.
func FieldErrorKey(field string, kind domain.FieldErrorKind) Key {
	switch {
	case kind == domain.RequiredFieldMissing:
		return KeyErrorRequired
	case field == "email":
		return KeyErrorInvalidEmail
	default:
		return KeyErrorInvalidChoice
	}
}
