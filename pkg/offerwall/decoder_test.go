package offerwall

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalFeed = `[{"id":"1","name":"N","devname":"D","os":"ios","status":"active","link":"https://x","icone":"https://y","price_app":"free","reward_amount":1.5,"small_description":"d","small_description_html":"<p>d</p>","actions":[{"id":"a1","amount":0.5,"text":"t","html":"<b>t</b>"}]}]`

const richFeed = `[
  {"id":"10","name":"Game","devname":"Studio","os":"android","status":"active","link":"https://l/10","icone":"https://i/10",
   "price_app":"free","money_icon":"https://m/coin.png","money_name":"coins","reward_amount":120,
   "small_description":"Reach level 5","small_description_html":"<p>Reach level 5</p>",
   "actions":[{"id":"a","amount":1,"text":"Install","html":"<b>Install</b>"},{"id":"b","amount":2.25,"text":"Level 5","html":"Level 5"}],
   "total_payout":{"amount":3.25,"cur":"USD"},"categories":["game","rpg"]},
  {"id":"2","name":"Second","devname":"D2","os":"ios","status":"active","link":"https://l/2","icone":"https://i/2",
   "price_app":"0.99","reward_amount":0,"small_description":"","small_description_html":"","actions":[]}
]`

func TestDecode_Minimal(t *testing.T) {
	feed, err := Decode([]byte(minimalFeed))
	require.NoError(t, err)
	require.Len(t, feed, 1)

	e := feed[0]
	assert.Equal(t, "1", e.ID)
	assert.Equal(t, "D", e.DevName)
	assert.Equal(t, "https://y", e.Icon)
	assert.Equal(t, "free", e.PriceApp)
	assert.Equal(t, 1.5, e.RewardAmount)
	assert.Equal(t, "<p>d</p>", e.SmallDescriptionHTML)
	assert.Empty(t, e.MoneyName)
	assert.Nil(t, e.TotalPayout)
	assert.Nil(t, e.Categories)

	require.Len(t, e.Actions, 1)
	assert.Equal(t, Action{ID: "a1", Amount: 0.5, Text: "t", HTML: "<b>t</b>"}, e.Actions[0])
}

func TestDecode_RichSchemaKeepsOrder(t *testing.T) {
	feed, err := Decode([]byte(richFeed))
	require.NoError(t, err)
	require.Len(t, feed, 2)

	assert.Equal(t, "10", feed[0].ID)
	assert.Equal(t, "2", feed[1].ID)

	assert.Equal(t, "coins", feed[0].MoneyName)
	assert.Equal(t, "https://m/coin.png", feed[0].MoneyIcon)
	require.NotNil(t, feed[0].TotalPayout)
	assert.Equal(t, TotalPayout{Amount: 3.25, Currency: "USD"}, *feed[0].TotalPayout)
	assert.Equal(t, []string{"game", "rpg"}, feed[0].Categories)
	assert.Equal(t, []string{"a", "b"}, []string{feed[0].Actions[0].ID, feed[0].Actions[1].ID})

	assert.Zero(t, feed[1].RewardAmount)
	assert.Empty(t, feed[1].Actions)
}

func TestDecode_EmptyArray(t *testing.T) {
	feed, err := Decode([]byte(" [] "))
	require.NoError(t, err)
	assert.NotNil(t, feed)
	assert.Empty(t, feed)
}

func TestDecode_Failures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `not json`},
		{"empty body", ``},
		{"object instead of array", `{"offers":[]}`},
		{"null", `null`},
		{"truncated", `[{"id":"1"`},
		{"missing required field", `[{"id":"1","name":"N","devname":"D","os":"ios","status":"active","link":"https://x","icone":"https://y","price_app":"free","small_description":"d","small_description_html":"<p>d</p>","actions":[]}]`},
		{"wrong type", `[{"id":1,"name":"N","devname":"D","os":"ios","status":"active","link":"https://x","icone":"https://y","price_app":"free","reward_amount":1,"small_description":"d","small_description_html":"<p>d</p>","actions":[]}]`},
		{"missing actions", `[{"id":"1","name":"N","devname":"D","os":"ios","status":"active","link":"https://x","icone":"https://y","price_app":"free","reward_amount":1,"small_description":"d","small_description_html":"<p>d</p>"}]`},
		{"action without amount", `[{"id":"1","name":"N","devname":"D","os":"ios","status":"active","link":"https://x","icone":"https://y","price_app":"free","reward_amount":1,"small_description":"d","small_description_html":"<p>d</p>","actions":[{"id":"a1","text":"t","html":"h"}]}]`},
		{"payout without currency", `[{"id":"1","name":"N","devname":"D","os":"ios","status":"active","link":"https://x","icone":"https://y","price_app":"free","reward_amount":1,"small_description":"d","small_description_html":"<p>d</p>","actions":[],"total_payout":{"amount":1}}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feed, err := Decode([]byte(tt.body))
			assert.Nil(t, feed)

			var decodeErr *DecodeError
			require.True(t, errors.As(err, &decodeErr), "got %T: %v", err, err)
			assert.Equal(t, tt.body, string(decodeErr.Body))

			var transportErr *TransportError
			assert.False(t, errors.As(err, &transportErr))
		})
	}
}
