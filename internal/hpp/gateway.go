package hpp

import "strings"

// Mandatory setting names reported by MissingParameterError.
const (
	SettingIdentifier = "identifier"
	SettingSecretKey  = "secret_key"
	SettingActionURL  = "action_url"
	SettingSigner     = "signer"
)

var mandatorySettings = []string{
	SettingIdentifier,
	SettingSecretKey,
	SettingActionURL,
	SettingSigner,
}

// Settings configures a Gateway. SecretKey is held only here and by the
// signer; it is never logged and never appears in an outbound field set
// except as the derived merchantSig value.
type Settings struct {
	Identifier string
	SecretKey  string
	ActionURL  string
	Signer     Signer
}

// Gateway is the process-wide configuration holder wiring the merchant
// credentials and signer into the interaction types. Read-only after
// construction, so it is safe to share across concurrent callbacks.
type Gateway struct {
	identifier string
	secretKey  string
	actionURL  string
	signer     Signer
}

// New validates the settings and returns a gateway. Any missing setting is a
// configuration fault; the error names every mandatory key.
func New(settings Settings) (*Gateway, error) {
	missing := strings.TrimSpace(settings.Identifier) == "" ||
		strings.TrimSpace(settings.SecretKey) == "" ||
		strings.TrimSpace(settings.ActionURL) == "" ||
		settings.Signer == nil
	if missing {
		return nil, &MissingParameterError{Parameters: mandatorySettings}
	}
	return &Gateway{
		identifier: settings.Identifier,
		secretKey:  settings.SecretKey,
		actionURL:  settings.ActionURL,
		signer:     settings.Signer,
	}, nil
}

// Identifier returns the merchant account identifier.
func (g *Gateway) Identifier() string { return g.identifier }

// ActionURL returns the hosted payment page URL the form posts to.
func (g *Gateway) ActionURL() string { return g.actionURL }

// BuildPaymentFormFields validates and signs the supplied parameters and
// returns the hidden form field descriptors for the payment page submission.
func (g *Gateway) BuildPaymentFormFields(params *FieldSet) ([]FormField, error) {
	req, err := g.NewPaymentFormRequest(params)
	if err != nil {
		return nil, err
	}
	return req.FormFields(), nil
}
