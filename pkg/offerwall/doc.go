// Package offerwall builds signed requests to the offer-wall service and
// decodes its JSON feed.
//
// Every request carries a `timestamp` (Unix seconds) and a `hash`, the
// lowercase hex SHA-1 of timestamp+apiKey. The API key itself never leaves
// the process: it is neither sent nor logged.
//
// # Basic Usage
//
//	client := offerwall.NewClient(&offerwall.ClientConfig{
//	    Config: offerwall.Config{
//	        APIKey:      "your-api-key",
//	        PublisherID: "your-publisher-id",
//	    },
//	    Source: platformSource,
//	})
//
//	req := &offerwall.OfferRequest{
//	    UserID:             "user-42",
//	    UserGender:         offerwall.GenderFemale,
//	    CallbackParameters: []string{"campaign-7"},
//	}
//	feed, err := client.FetchFeed(ctx, req)
//
//	// URL for a browser or webview
//	wallURL, err := client.HostedWallURL(req)
//
// # Error Handling
//
// Failures are typed so callers can tell a misconfigured client from an
// unreachable server and from a server that answered with garbage:
//
//	var decodeErr *offerwall.DecodeError
//	var transportErr *offerwall.TransportError
//	switch {
//	case errors.As(err, &transportErr):
//	    // network, timeout or non-2xx status
//	case errors.As(err, &decodeErr):
//	    // decodeErr.Body holds the raw response
//	}
package offerwall
