package input

import (
	"bufio"
	"time"
)

// HoldDuration is how long a key stays held after its last byte arrives.
// Terminals only report presses (and auto-repeats), never releases.
const HoldDuration = 50 * time.Millisecond

// Poll is the outcome of draining a Stream once.
type Poll struct {
	Quit     bool // quit key seen or the reader closed
	Activity bool // at least one byte arrived
}

// Stream delivers terminal bytes via a channel and turns them into key
// events on a State.
type Stream struct {
	ch       chan byte
	closed   bool
	lastSeen [numActions]time.Time
}

// StartStream spawns a goroutine that reads from r and feeds the stream.
// The goroutine exits when r returns an error.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		defer close(s.ch)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Drain applies every pending byte to in as key-down events, then releases
// any action whose key has not repeated within HoldDuration.
func (s *Stream) Drain(in *State, now time.Time) Poll {
	var buf []byte
	var res Poll

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	res.Activity = len(buf) > 0
	for _, key := range decodeBytes(buf) {
		if key == keyQuit {
			res.Quit = true
			continue
		}
		if a, ok := Decode(key); ok {
			in.Set(a, true)
			s.lastSeen[a] = now
		}
	}

	for a := Action(0); a < numActions; a++ {
		if in.Pressed(a) && now.Sub(s.lastSeen[a]) >= HoldDuration {
			in.Set(a, false)
		}
	}

	if s.closed {
		res.Quit = true
	}
	return res
}

const keyQuit = "\x00quit"

// decodeBytes converts raw terminal input into key names.
// Arrow keys arrive as CSI sequences: ESC [ A..D.
func decodeBytes(buf []byte) []string {
	var keys []string
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			var name string
			switch buf[i+2] {
			case 'A':
				name = "ArrowUp"
			case 'B':
				name = "ArrowDown"
			case 'C':
				name = "ArrowRight"
			case 'D':
				name = "ArrowLeft"
			}
			if name != "" {
				keys = append(keys, name)
				i += 2
				continue
			}
		}
		switch b {
		case 'q', 'Q', '\x03':
			keys = append(keys, keyQuit)
		default:
			keys = append(keys, string(rune(b)))
		}
	}
	return keys
}
