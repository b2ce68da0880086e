//go:build ignore

package example

// @record
type Host struct {
	HostName string `layout:"maxlen=32"`
	Port     int32
	Active   bool
}

// @message id=10 version=1 header
type RegisterService struct {
	CorrelationID int64
	ServiceName   string `layout:"maxlen=24"`
	Weight        int16
}

// @message id=11 version=1 header
type HostConnection struct {
	CorrelationID int64
	Hosts         []Host
	Healthy       bool
}
