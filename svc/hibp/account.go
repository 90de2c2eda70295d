package hibp

import (
	"context"
	"encoding/json"
	"net/http"

	"pwncheck/pkg/domain"
	"pwncheck/svc/util"

	"github.com/pkg/errors"
)

const (
	opBreachedAccount = "breachedaccount"
	opPasteAccount    = "pasteaccount"
	opBreach          = "breach"
)

// BreachesForAccount lists the breaches email appears in, in the order the
// service returns them. found is false when the service has no record of
// the account, which is distinct from an empty list.
func (c *Client) BreachesForAccount(ctx context.Context, apiKey, userAgent, email string) (breaches []domain.Breach, found bool, err error) {
	resp, err := c.get(ctx, opBreachedAccount, apiKey, userAgent, c.apiURL+"/breachedaccount/"+email)
	if err != nil {
		observe(opBreachedAccount, err, false)
		return nil, false, err
	}
	if resp.status == http.StatusNotFound {
		observe(opBreachedAccount, nil, false)
		return nil, false, nil
	}
	if err := json.Unmarshal(resp.body, &breaches); err != nil {
		observe(opBreachedAccount, err, false)
		return nil, false, errors.Wrap(err, "decode breaches")
	}
	if breaches == nil {
		breaches = []domain.Breach{}
	}
	observe(opBreachedAccount, nil, true)
	util.Debug().
		Str("account", util.RedactEmail(email)).
		Int("breaches", len(breaches)).
		Msg("breach lookup done")
	return breaches, true, nil
}

// PastesForAccount lists the pastes email appears in. An unknown account
// yields an empty, non-nil collection.
func (c *Client) PastesForAccount(ctx context.Context, apiKey, userAgent, email string) (domain.Pastes, error) {
	resp, err := c.get(ctx, opPasteAccount, apiKey, userAgent, c.apiURL+"/pasteaccount/"+email)
	if err != nil {
		observe(opPasteAccount, err, false)
		return nil, err
	}
	pastes := domain.Pastes{}
	if resp.status == http.StatusNotFound {
		observe(opPasteAccount, nil, false)
		return pastes, nil
	}
	if err := json.Unmarshal(resp.body, &pastes); err != nil {
		observe(opPasteAccount, err, false)
		return nil, errors.Wrap(err, "decode pastes")
	}
	if pastes == nil {
		pastes = domain.Pastes{}
	}
	observe(opPasteAccount, nil, len(pastes) > 0)
	util.Debug().
		Str("account", util.RedactEmail(email)).
		Int("pastes", len(pastes)).
		Msg("paste lookup done")
	return pastes, nil
}

// Breach fetches a single breach by its Name. It returns nil, nil when no
// breach has that name.
func (c *Client) Breach(ctx context.Context, apiKey, userAgent, name string) (*domain.Breach, error) {
	resp, err := c.get(ctx, opBreach, apiKey, userAgent, c.apiURL+"/breach/"+name)
	if err != nil {
		observe(opBreach, err, false)
		return nil, err
	}
	if resp.status == http.StatusNotFound {
		observe(opBreach, nil, false)
		return nil, nil
	}
	var b domain.Breach
	if err := json.Unmarshal(resp.body, &b); err != nil {
		observe(opBreach, err, false)
		return nil, errors.Wrap(err, "decode breach")
	}
	observe(opBreach, nil, true)
	return &b, nil
}
