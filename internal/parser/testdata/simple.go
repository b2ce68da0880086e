package testdata

// @record
type Host struct {
	HostName string `layout:"maxlen=40"`
	Port     int32
}

// @message id=1 version=2 header
type HostConnection struct {
	CorrelationID int64
	Hosts         []Host
	Flags         int32
}

// @message name=Ack
type AckMessage struct {
	OK    bool
	Ratio float64
	Code  int     `layout:"type=int16"`
	note  string  // unexported, not part of the layout
	Cache []byte  `layout:"-"`
	Tag   string  `layout:"maxlen=8" json:"tag"`
}

// No annotation - should be skipped
type IgnoredType struct {
	Field int32
}
