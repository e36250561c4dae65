package twilio

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const closeWriteTimeout = time.Second

// Stream is one Twilio media stream websocket. Reads must come from a single
// goroutine; writes are serialized.
type Stream struct {
	conn       *websocket.Conn
	writeMutex sync.Mutex
	closeOnce  sync.Once
}

func NewStream(conn *websocket.Conn) *Stream {
	return &Stream{conn: conn}
}

// ReadEvent blocks for the next frame. Malformed frames are reported with
// ErrMalformedFrame and leave the stream usable.
func (s *Stream) ReadEvent() (MediaEvent, error) {
	_, msg, err := s.conn.ReadMessage()
	if err != nil {
		return MediaEvent{}, err
	}
	return ParseEvent(msg)
}

// SendMedia writes a media frame carrying payload.
func (s *Stream) SendMedia(streamSid, payload string) error {
	msg, err := json.Marshal(NewOutboundMedia(streamSid, payload))
	if err != nil {
		return fmt.Errorf("failed to marshal media message: %w", err)
	}

	s.writeMutex.Lock()
	defer s.writeMutex.Unlock()
	return s.conn.WriteMessage(websocket.TextMessage, msg)
}

// Close sends a normal close frame and closes the connection. Safe to call
// more than once.
func (s *Stream) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.writeMutex.Lock()
		_ = s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(closeWriteTimeout))
		s.writeMutex.Unlock()
		err = s.conn.Close()
	})
	return err
}

// IsNormalClose reports whether err is the peer hanging up cleanly.
func IsNormalClose(err error) bool {
	return websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway)
}
