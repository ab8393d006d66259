package playback

// subscriptionBuffer is how many events of each kind a listener may fall
// behind before further ones are dropped.
const subscriptionBuffer = 16

// Subscription is one listener's view of controller events. Done is closed
// when the controller shuts down.
type Subscription struct {
	StateChanged <-chan StateChange
	TrackChanged <-chan TrackChange
	ModeChanged  <-chan ModeChange
	Done         <-chan struct{}

	state chan StateChange
	track chan TrackChange
	mode  chan ModeChange
	done  chan struct{}
}

func newSubscription() *Subscription {
	state := make(chan StateChange, subscriptionBuffer)
	track := make(chan TrackChange, subscriptionBuffer)
	mode := make(chan ModeChange, subscriptionBuffer)
	done := make(chan struct{})
	return &Subscription{
		StateChanged: state,
		TrackChanged: track,
		ModeChanged:  mode,
		Done:         done,
		state:        state,
		track:        track,
		mode:         mode,
		done:         done,
	}
}

// deliver queues e on the matching channel without blocking.
func (s *Subscription) deliver(e any) {
	switch e := e.(type) {
	case StateChange:
		offer(s.state, e)
	case TrackChange:
		offer(s.track, e)
	case ModeChange:
		offer(s.mode, e)
	}
}

func (s *Subscription) end() { close(s.done) }

func offer[E any](ch chan<- E, e E) bool {
	select {
	case ch <- e:
		return true
	default:
		return false
	}
}
