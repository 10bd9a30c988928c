package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/TheusHen/dhchat/dhchat/protocol"
)

var (
	ErrConnection     = errors.New("session: connection failed")
	ErrNotEstablished = errors.New("session: not established")
	ErrClosed         = errors.New("session: closed")
)

type inputLine struct {
	text string
	err  error
}

// Run drives the session until the peer closes the stream, local input ends,
// ctx is cancelled or an I/O error occurs. Orderly endings return nil. The
// connection is closed before Run returns.
//
// Lines are read from input by a helper goroutine. If input never returns
// (an interactive terminal, say) that goroutine outlives Run until the next
// line arrives.
func (s *Session) Run(ctx context.Context, input io.Reader) error {
	if !s.state.CompareAndSwap(int32(StateEstablished), int32(StateDuplex)) {
		if s.State() == StateClosed {
			return ErrClosed
		}
		return ErrNotEstablished
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	stop := context.AfterFunc(gctx, func() { _ = s.Close() })
	defer stop()

	lines := readLines(gctx, input)

	g.Go(func() error {
		defer cancel()
		return s.receiveLoop(gctx)
	})
	g.Go(func() error {
		defer cancel()
		return s.sendLoop(gctx, lines)
	})

	err := g.Wait()
	_ = s.Close()

	st := s.Stats()
	s.log.Info("session closed",
		"peer_closed", s.PeerClosed(),
		"sent_messages", st.MessagesSent,
		"sent_bytes", st.BytesSent,
		"received_chunks", st.MessagesReceived,
		"received_bytes", st.BytesReceived)
	return err
}

func (s *Session) receiveLoop(ctx context.Context) error {
	buf := make([]byte, protocol.ReadBufferSize)
	for {
		n, err := s.conn.Read(buf)
		if n > 0 {
			if derr := s.receive(buf[:n]); derr != nil {
				return derr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.peerClosed.Store(true)
				s.log.Info("peer closed the connection")
				return nil
			}
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("%w: read: %w", ErrConnection, err)
		}
	}
}

func (s *Session) receive(chunk []byte) error {
	ciphertext := append([]byte(nil), chunk...)
	plaintext, err := s.channel.Decrypt(ciphertext)
	if err != nil {
		return err
	}
	s.msgsRecv.Add(1)
	s.bytesRecv.Add(uint64(len(ciphertext)))

	msg := Message{
		Direction:  Inbound,
		Plaintext:  plaintext,
		Ciphertext: ciphertext,
	}
	if utf8.Valid(plaintext) {
		msg.Text = string(plaintext)
		msg.Valid = true
	} else {
		s.log.Debug("received chunk is not valid UTF-8", "bytes", len(plaintext))
	}
	s.log.Debug("received", "bytes", len(ciphertext))
	if s.opts.OnReceive != nil {
		s.opts.OnReceive(msg)
	}
	return nil
}

func (s *Session) sendLoop(ctx context.Context, lines <-chan inputLine) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				s.log.Debug("local input closed")
				return nil
			}
			if line.err != nil {
				return fmt.Errorf("session: read input: %w", line.err)
			}
			if err := s.send(line.text); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
		}
	}
}

// send encrypts and writes one input line. Blank lines are dropped before
// they reach the keystream.
func (s *Session) send(line string) error {
	text := strings.TrimSpace(line)
	if text == "" {
		return nil
	}
	plaintext := []byte(text)
	ciphertext, verified, err := s.channel.Encrypt(plaintext)
	if err != nil {
		return err
	}
	if _, err := s.conn.Write(ciphertext); err != nil {
		return fmt.Errorf("%w: write: %w", ErrConnection, err)
	}
	s.msgsSent.Add(1)
	s.bytesSent.Add(uint64(len(ciphertext)))
	s.log.Debug("sent", "bytes", len(ciphertext))

	if s.opts.OnSend != nil {
		s.opts.OnSend(Message{
			Direction:  Outbound,
			Plaintext:  plaintext,
			Ciphertext: ciphertext,
			Text:       text,
			Valid:      true,
			Verified:   verified,
		})
	}
	return nil
}

// readLines feeds input to the send loop one line at a time. The channel is
// closed at end of input.
func readLines(ctx context.Context, input io.Reader) <-chan inputLine {
	out := make(chan inputLine)
	go func() {
		defer close(out)
		br := bufio.NewReader(input)
		for {
			text, err := br.ReadString('\n')
			if text != "" {
				select {
				case out <- inputLine{text: text}:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					select {
					case out <- inputLine{err: err}:
					case <-ctx.Done():
					}
				}
				return
			}
		}
	}()
	return out
}
