package offerwall

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// wire shapes use pointers so a missing key can be told apart from a zero value.
type wireEntry struct {
	ID                   *string      `json:"id" validate:"required"`
	Name                 *string      `json:"name" validate:"required"`
	DevName              *string      `json:"devname" validate:"required"`
	OS                   *string      `json:"os" validate:"required"`
	Status               *string      `json:"status" validate:"required"`
	Link                 *string      `json:"link" validate:"required"`
	Icon                 *string      `json:"icone" validate:"required"`
	PriceApp             *string      `json:"price_app" validate:"required"`
	MoneyIcon            *string      `json:"money_icon"`
	MoneyName            *string      `json:"money_name"`
	RewardAmount         *float64     `json:"reward_amount" validate:"required"`
	SmallDescription     *string      `json:"small_description" validate:"required"`
	SmallDescriptionHTML *string      `json:"small_description_html" validate:"required"`
	Actions              []wireAction `json:"actions" validate:"required,dive"`
	TotalPayout          *wirePayout  `json:"total_payout"`
	Categories           []string     `json:"categories"`
}

type wireAction struct {
	ID     *string  `json:"id" validate:"required"`
	Amount *float64 `json:"amount" validate:"required"`
	Text   *string  `json:"text" validate:"required"`
	HTML   *string  `json:"html" validate:"required"`
}

type wirePayout struct {
	Amount   *float64 `json:"amount" validate:"required"`
	Currency *string  `json:"cur" validate:"required"`
}

var errNotArray = errors.New("feed is not a JSON array")

// Decode parses a feed response body. Any malformed or schema-mismatched
// body yields a *DecodeError carrying the raw bytes. An empty array is a
// valid, empty feed.
func Decode(body []byte) (Feed, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		if !json.Valid(trimmed) {
			return nil, &DecodeError{Body: body, Cause: errors.New("invalid JSON")}
		}
		return nil, &DecodeError{Body: body, Cause: errNotArray}
	}

	var entries []wireEntry
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, &DecodeError{Body: body, Cause: err}
	}

	feed := make(Feed, 0, len(entries))
	for i := range entries {
		if err := validate.Struct(&entries[i]); err != nil {
			return nil, &DecodeError{Body: body, Cause: fmt.Errorf("entry %d: %w", i, err)}
		}
		feed = append(feed, entries[i].entry())
	}
	return feed, nil
}

func (w *wireEntry) entry() FeedEntry {
	e := FeedEntry{
		ID:                   *w.ID,
		Name:                 *w.Name,
		DevName:              *w.DevName,
		OS:                   *w.OS,
		Status:               *w.Status,
		Link:                 *w.Link,
		Icon:                 *w.Icon,
		PriceApp:             *w.PriceApp,
		MoneyIcon:            deref(w.MoneyIcon),
		MoneyName:            deref(w.MoneyName),
		RewardAmount:         *w.RewardAmount,
		SmallDescription:     *w.SmallDescription,
		SmallDescriptionHTML: *w.SmallDescriptionHTML,
		Actions:              make([]Action, 0, len(w.Actions)),
		Categories:           w.Categories,
	}
	for _, a := range w.Actions {
		e.Actions = append(e.Actions, Action{ID: *a.ID, Amount: *a.Amount, Text: *a.Text, HTML: *a.HTML})
	}
	if w.TotalPayout != nil {
		e.TotalPayout = &TotalPayout{Amount: *w.TotalPayout.Amount, Currency: *w.TotalPayout.Currency}
	}
	return e
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
