package groupcomm

import (
	"time"

	kitlog "github.com/go-kit/log"

	"github.com/maxpoletaev/kivi-group/membership"
)

type Config struct {
	SelfID        membership.MemberID
	BindAddr      string
	BindPort      int
	AdvertiseAddr string
	AdvertisePort int

	// SettleDelay is how long membership must stay unchanged before a new
	// view is delivered.
	SettleDelay    time.Duration
	RetransmitMult int
	QueueSize      int

	Handler    Handler
	LocalState func() membership.Member
	Logger     kitlog.Logger
}

func DefaultConfig() *Config {
	return &Config{
		BindAddr:       "0.0.0.0",
		BindPort:       7946,
		SettleDelay:    500 * time.Millisecond,
		RetransmitMult: 3,
		QueueSize:      1024,
		Logger:         kitlog.NewNopLogger(),
	}
}
