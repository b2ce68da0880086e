package testdata

type (
	// @record
	Quote struct {
		Symbol string `layout:"maxlen=8"`
		Bid    float64
		Ask    float64
	}

	// @message id=20 header fixed
	QuoteBook struct {
		Venue  string `layout:"maxlen=4"`
		Quotes []Quote
	}
)

// @message
type Broken struct {
	Pointer *int32
	Note    string `layout:"maxlen=x"`
}
