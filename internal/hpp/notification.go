package hpp

import "strings"

// Outcome is the interpreted result of a validated inbound interaction.
// It is only ever built from input that passed validation.
type Outcome struct {
	Accepted bool
	Status   string
	Fields   *FieldSet
}

// ProcessNotification validates a server-to-server payment notification and
// interprets its outcome. Notifications arrive over an authenticated
// server-to-server channel, so no signature check applies here.
//
// Additional-data fields are extension data the processor attaches depending
// on account settings; they are dropped before validation instead of being
// rejected as unexpected, and do not appear in the returned outcome.
func (g *Gateway) ProcessNotification(params *FieldSet) (Outcome, error) {
	fields := stripAdditionalData(params)
	if err := NotificationContract.Check(fields); err != nil {
		return Outcome{}, err
	}
	// Anything other than the literal truth token, including a malformed
	// value, counts as refused.
	accepted := fields.Get(FieldSuccess) == TrueToken
	status := ResultRefused
	if accepted {
		status = ResultAuthorised
	}
	return Outcome{Accepted: accepted, Status: status, Fields: fields}, nil
}

func stripAdditionalData(params *FieldSet) *FieldSet {
	out := NewFieldSet()
	if params == nil {
		return out
	}
	for _, name := range params.Keys() {
		if strings.Contains(name, AdditionalDataPrefix) {
			continue
		}
		out.Set(name, params.Get(name))
	}
	return out
}
