package wsplay

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const pingInterval = 25 * time.Second

var errConnClosed = errors.New("websocket closed")

// Conn turns a websocket into the game's output sink and line source.
//
// Writes are buffered and sent as a single text message right before the
// next read, so every prompt reaches the player as one message. Each text
// message received is one line of input.
//
// Write, Flush, ReadLine and Close belong to the goroutine playing the game;
// the write loop owns the socket's write side.
type Conn struct {
	ws   *websocket.Conn
	send chan []byte
	buf  bytes.Buffer

	done      chan struct{} // closed when the write loop exits
	closeOnce sync.Once
}

func newConn(ws *websocket.Conn) *Conn {
	c := &Conn{
		ws:   ws,
		send: make(chan []byte, 16),
		done: make(chan struct{}),
	}
	go c.writeLoop()
	return c
}

func (c *Conn) Write(p []byte) (int, error) {
	return c.buf.Write(p)
}

// Flush sends the buffered output, if any.
func (c *Conn) Flush() error {
	if c.buf.Len() == 0 {
		return nil
	}
	msg := bytes.Clone(c.buf.Bytes())
	c.buf.Reset()

	select {
	case c.send <- msg:
		return nil
	case <-c.done:
		return errConnClosed
	}
}

// ReadLine flushes pending output then blocks for the next text message.
// Binary messages are ignored. Any read failure, including a regular close
// from the peer, is reported as io.EOF: the player is gone.
func (c *Conn) ReadLine() (string, error) {
	if err := c.Flush(); err != nil {
		return "", errors.Join(io.EOF, err)
	}
	for {
		mt, data, err := c.ws.ReadMessage()
		if err != nil {
			return "", errors.Join(io.EOF, err)
		}
		if mt != websocket.TextMessage {
			continue
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}
}

// Close flushes what is left, says goodbye and waits for the write loop.
func (c *Conn) Close() error {
	err := c.Flush()
	c.closeOnce.Do(func() {
		close(c.send)
	})
	<-c.done
	if cerr := c.ws.Close(); err == nil {
		err = cerr
	}
	return err
}

func (c *Conn) writeLoop() {
	defer close(c.done)

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over"))
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
