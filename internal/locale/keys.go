package locale

// Key is a dotted path into the translation catalog that the site itself
// renders. Catalog.Verify checks that every Key exists in the reference
// language, so a typo here fails start-up instead of leaking to a page.
type Key string

const (
	KeyMetaTitle       Key = "meta.title"
	KeyMetaDescription Key = "meta.description"
	KeyMetaOGAlt       Key = "meta.og_alt"
	KeyMetaTagline     Key = "meta.tagline"

	KeyNavHome      Key = "nav.home"
	KeyNavAbout     Key = "nav.about"
	KeyNavSolutions Key = "nav.solutions"
	KeyNavContact   Key = "nav.contact"
	KeyNavCTA       Key = "nav.cta"
	KeyNavLanguage  Key = "nav.language"

	KeyFooterDescription Key = "footer.description"
	KeyFooterNavigation  Key = "footer.navigation"
	KeyFooterContact     Key = "footer.contact"
	KeyFooterLegal       Key = "footer.legal"
	KeyFooterTerms       Key = "footer.terms"
	KeyFooterPrivacy     Key = "footer.privacy"
	KeyFooterCopyright   Key = "footer.copyright"

	KeyHomeHeroTitle        Key = "home.hero.title"
	KeyHomeHeroSubtitle     Key = "home.hero.subtitle"
	KeyHomeHeroCTAPrimary   Key = "home.hero.cta_primary"
	KeyHomeHeroCTASecondary Key = "home.hero.cta_secondary"
	KeyHomeProblemsTitle    Key = "home.problems.title"
	KeyHomeProblemsTime     Key = "home.problems.time"
	KeyHomeProblemsErrors   Key = "home.problems.errors"
	KeyHomeProblemsTools    Key = "home.problems.tools"
	KeyHomeApproachTitle    Key = "home.approach.title"
	KeyHomeApproachListen   Key = "home.approach.listen"
	KeyHomeApproachBuild    Key = "home.approach.build"
	KeyHomeApproachSupport  Key = "home.approach.support"

	KeyAboutTitle              Key = "about.title"
	KeyAboutIntro              Key = "about.intro"
	KeyAboutMissionTitle       Key = "about.mission.title"
	KeyAboutMissionBody        Key = "about.mission.body"
	KeyAboutValuesTitle        Key = "about.values.title"
	KeyAboutValuesProximity    Key = "about.values.proximity"
	KeyAboutValuesSimplicity   Key = "about.values.simplicity"
	KeyAboutValuesTransparency Key = "about.values.transparency"

	KeySolutionsTitle    Key = "solutions.title"
	KeySolutionsSubtitle Key = "solutions.subtitle"

	KeyPricingTitle        Key = "solutions.pricing.title"
	KeyPricingSubtitle     Key = "solutions.pricing.subtitle"
	KeyPricingInitialTitle Key = "solutions.pricing.initial.title"
	KeyPricingInitialPrice Key = "solutions.pricing.initial.price"
	KeyPricingInitialNote  Key = "solutions.pricing.initial.note"
	KeyPricingMonthlyTitle Key = "solutions.pricing.monthly.title"
	KeyPricingMonthlyPrice Key = "solutions.pricing.monthly.price"
	KeyPricingMonthlyNote  Key = "solutions.pricing.monthly.note"

	KeyContactTitle               Key = "contact.title"
	KeyContactSubtitle            Key = "contact.subtitle"
	KeyContactDirect              Key = "contact.direct"
	KeyContactArea                Key = "contact.area"
	KeyContactAreaValue           Key = "contact.area_value"
	KeyContactResponseTitle       Key = "contact.response.title"
	KeyContactResponseBody        Key = "contact.response.body"
	KeyFormTitle                  Key = "contact.form.title"
	KeyFormName                   Key = "contact.form.name"
	KeyFormCompany                Key = "contact.form.company"
	KeyFormEmail                  Key = "contact.form.email"
	KeyFormPhone                  Key = "contact.form.phone"
	KeyFormEmployees              Key = "contact.form.employees"
	KeyFormEmployeesPlaceholder   Key = "contact.form.employees_placeholder"
	KeyFormModules                Key = "contact.form.modules"
	KeyFormDescription            Key = "contact.form.description"
	KeyFormDescriptionPlaceholder Key = "contact.form.description_placeholder"
	KeyFormPreference             Key = "contact.form.preference"
	KeyFormSubmit                 Key = "contact.form.submit"
	KeyFormSubmitting             Key = "contact.form.submitting"

	KeyErrorRequired      Key = "contact.errors.required"
	KeyErrorInvalidEmail  Key = "contact.errors.invalid_email"
	KeyErrorInvalidChoice Key = "contact.errors.invalid_choice"

	KeyStatusSuccessTitle Key = "contact.status.success_title"
	KeyStatusSuccessBody  Key = "contact.status.success_body"
	KeyStatusErrorTitle   Key = "contact.status.error_title"
	KeyStatusErrorBody    Key = "contact.status.error_body"
	KeyStatusPending      Key = "contact.status.pending"
	KeyStatusRateLimited  Key = "contact.status.rate_limited"

	KeyPreferencePhone Key = "contact.preferences.phone"
	KeyPreferenceEmail Key = "contact.preferences.email"
	KeyPreferenceVideo Key = "contact.preferences.video"

	KeyModuleReportsTitle    Key = "modules.reports.title"
	KeyModuleReportsBody     Key = "modules.reports.body"
	KeyModulePlanningTitle   Key = "modules.planning.title"
	KeyModulePlanningBody    Key = "modules.planning.body"
	KeyModuleStockTitle      Key = "modules.stock.title"
	KeyModuleStockBody       Key = "modules.stock.body"
	KeyModuleCustomersTitle  Key = "modules.customers.title"
	KeyModuleCustomersBody   Key = "modules.customers.body"
	KeyModuleEquipmentTitle  Key = "modules.equipment.title"
	KeyModuleEquipmentBody   Key = "modules.equipment.body"
	KeyModuleIntranetTitle   Key = "modules.intranet.title"
	KeyModuleIntranetBody    Key = "modules.intranet.body"
	KeyModuleAutomationTitle Key = "modules.automation.title"
	KeyModuleAutomationBody  Key = "modules.automation.body"
	KeyModuleOtherTitle      Key = "modules.other.title"

	KeyTermsTitle   Key = "legal.terms.title"
	KeyTermsBody    Key = "legal.terms.body"
	KeyPrivacyTitle Key = "legal.privacy.title"
	KeyPrivacyBody  Key = "legal.privacy.body"
)

// AllKeys lists every Key constant.
func AllKeys() []Key {
	return []Key{
		KeyMetaTitle, KeyMetaDescription, KeyMetaOGAlt, KeyMetaTagline,
		KeyNavHome, KeyNavAbout, KeyNavSolutions, KeyNavContact, KeyNavCTA, KeyNavLanguage,
		KeyFooterDescription, KeyFooterNavigation, KeyFooterContact, KeyFooterLegal,
		KeyFooterTerms, KeyFooterPrivacy, KeyFooterCopyright,
		KeyHomeHeroTitle, KeyHomeHeroSubtitle, KeyHomeHeroCTAPrimary, KeyHomeHeroCTASecondary,
		KeyHomeProblemsTitle, KeyHomeProblemsTime, KeyHomeProblemsErrors, KeyHomeProblemsTools,
		KeyHomeApproachTitle, KeyHomeApproachListen, KeyHomeApproachBuild, KeyHomeApproachSupport,
		KeyAboutTitle, KeyAboutIntro, KeyAboutMissionTitle, KeyAboutMissionBody,
		KeyAboutValuesTitle, KeyAboutValuesProximity, KeyAboutValuesSimplicity, KeyAboutValuesTransparency,
		KeySolutionsTitle, KeySolutionsSubtitle,
		KeyPricingTitle, KeyPricingSubtitle,
		KeyPricingInitialTitle, KeyPricingInitialPrice, KeyPricingInitialNote,
		KeyPricingMonthlyTitle, KeyPricingMonthlyPrice, KeyPricingMonthlyNote,
		KeyContactTitle, KeyContactSubtitle, KeyContactDirect, KeyContactArea, KeyContactAreaValue,
		KeyContactResponseTitle, KeyContactResponseBody,
		KeyFormTitle, KeyFormName, KeyFormCompany, KeyFormEmail, KeyFormPhone,
		KeyFormEmployees, KeyFormEmployeesPlaceholder, KeyFormModules,
		KeyFormDescription, KeyFormDescriptionPlaceholder, KeyFormPreference,
		KeyFormSubmit, KeyFormSubmitting,
		KeyErrorRequired, KeyErrorInvalidEmail, KeyErrorInvalidChoice,
		KeyStatusSuccessTitle, KeyStatusSuccessBody, KeyStatusErrorTitle, KeyStatusErrorBody, KeyStatusPending,
		KeyStatusRateLimited,
		KeyPreferencePhone, KeyPreferenceEmail, KeyPreferenceVideo,
		KeyModuleReportsTitle, KeyModuleReportsBody,
		KeyModulePlanningTitle, KeyModulePlanningBody,
		KeyModuleStockTitle, KeyModuleStockBody,
		KeyModuleCustomersTitle, KeyModuleCustomersBody,
		KeyModuleEquipmentTitle, KeyModuleEquipmentBody,
		KeyModuleIntranetTitle, KeyModuleIntranetBody,
		KeyModuleAutomationTitle, KeyModuleAutomationBody,
		KeyModuleOtherTitle,
		KeyTermsTitle, KeyTermsBody, KeyPrivacyTitle, KeyPrivacyBody,
	}
}
