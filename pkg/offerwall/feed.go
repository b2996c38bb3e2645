package offerwall

// Feed is the ordered list of offers returned by the service. Order is the
// server's ranking and is never changed by this package.
type Feed []FeedEntry

// FeedEntry is one offer. MoneyIcon, MoneyName, TotalPayout and Categories
// are only present in the richer schema revision of the feed.
type FeedEntry struct {
	ID                   string       `json:"id"`
	Name                 string       `json:"name"`
	DevName              string       `json:"devname"`
	OS                   string       `json:"os"`
	Status               string       `json:"status"`
	Link                 string       `json:"link"`
	Icon                 string       `json:"icone"`
	PriceApp             string       `json:"price_app"`
	MoneyIcon            string       `json:"money_icon,omitempty"`
	MoneyName            string       `json:"money_name,omitempty"`
	RewardAmount         float64      `json:"reward_amount"`
	SmallDescription     string       `json:"small_description"`
	SmallDescriptionHTML string       `json:"small_description_html"`
	Actions              []Action     `json:"actions"`
	TotalPayout          *TotalPayout `json:"total_payout,omitempty"`
	Categories           []string     `json:"categories,omitempty"`
}

// Action is a step the user completes to earn Amount.
type Action struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
	Text   string  `json:"text"`
	HTML   string  `json:"html"`
}

type TotalPayout struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"cur"`
}
