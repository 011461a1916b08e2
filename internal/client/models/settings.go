package models

// UserSettings is the single, process-wide settings record.
type UserSettings struct {
	Country             string `json:"country"`
	Currency            string `json:"currency"`
	Locale              string `json:"locale"`
	BusinessName        string `json:"businessName,omitempty"`
	LogoURI             string `json:"logoUri,omitempty"`
	LogoSize            string `json:"logoSize,omitempty"`
	BusinessEmail       string `json:"businessEmail,omitempty"`
	BusinessPhone       string `json:"businessPhone,omitempty"`
	BusinessAddress     string `json:"businessAddress,omitempty"`
	DefaultPaymentTerms string `json:"defaultPaymentTerms,omitempty"`
}
