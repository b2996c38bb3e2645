package offerwall

import (
	"testing"

	"github.com/rs/zerolog"
)

func BenchmarkBuild(b *testing.B) {
	builder := NewBuilder(testConfig(), iphoneSource(), NewSigner(fixedClock), zerolog.Nop())
	req := &OfferRequest{UserID: "u1", CountryCode: "IN", CallbackParameters: []string{"c1", "c2"}}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := builder.Build(req, EndpointAPIFeed); err != nil {
			b.Fatal(err)
		}
	}
}
