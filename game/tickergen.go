package game

import "time"

type TickerChannelCreator struct{}

func (TickerChannelCreator) Create(duration time.Duration) <-chan time.Time {
	return time.NewTicker(duration).C
}
