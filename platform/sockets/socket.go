package socket

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/DedS3t/richman-engine/app/models"
	"github.com/DedS3t/richman-engine/platform/logging"
	"github.com/DedS3t/richman-engine/platform/rooms"
	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

// Server is the socket.io transport. It also observes the registry and
// pushes every new room state to the clients seated in that room.
type Server struct {
	io      *socketio.Server
	handler *Handler
	log     *logrus.Entry

	mu       sync.Mutex
	finished map[string]bool
}

func CreateSocketIOServer(reg *rooms.Registry, secret []byte) (*Server, error) {
	io, err := socketio.NewServer(nil)
	if err != nil {
		return nil, err
	}
	s := &Server{
		io:       io,
		handler:  NewHandler(reg, secret),
		log:      logging.Component("sockets"),
		finished: map[string]bool{},
	}
	s.register()
	reg.AddObserver(s)
	return s, nil
}

func sessionOf(c socketio.Conn) *session {
	if sess, ok := c.Context().(*session); ok {
		return sess
	}
	sess := &session{}
	c.SetContext(sess)
	return sess
}

func (s *Server) register() {
	s.io.OnConnect("/", func(c socketio.Conn) error {
		c.SetContext(&session{})
		s.log.WithField("conn", c.ID()).Debug("connected")
		return nil
	})

	s.io.OnEvent("/", "join-game", func(c socketio.Conn, msg string) {
		var dto models.JoinDto
		if err := json.Unmarshal([]byte(msg), &dto); err != nil || dto.Game_id == "" {
			c.Emit("error-message", "Malformed join request")
			c.Emit("failed")
			return
		}
		sess := sessionOf(c)
		prev := sess.RoomID
		out, state, err := s.handler.Join(sess, dto)
		if err != nil {
			c.Emit("error-message", err.Error())
			c.Emit("failed")
			return
		}
		if prev != "" && prev != sess.RoomID {
			c.Leave(prev)
		}
		s.reply(c, out)
		if !out.Success {
			return
		}
		// The broadcast for this join went out before the conn was in the room.
		c.Join(dto.Game_id)
		c.Emit("joined-game", sess.UserID)
		s.emitState(c, state)
	})

	for _, a := range actions {
		action := a
		s.io.OnEvent("/", string(action), func(c socketio.Conn, msg string) {
			out, err := s.handler.Act(sessionOf(c), action, msg)
			if err != nil {
				c.Emit("error-message", err.Error())
				return
			}
			s.reply(c, out)
		})
	}

	s.io.OnEvent("/", "leave-game", func(c socketio.Conn, msg string) {
		if room := s.handler.Leave(sessionOf(c)); room != "" {
			c.Leave(room)
		}
	})

	s.io.OnError("/", func(c socketio.Conn, e error) {
		s.log.WithError(e).Warn("socket error")
	})

	s.io.OnDisconnect("/", func(c socketio.Conn, reason string) {
		s.handler.Leave(sessionOf(c))
		c.LeaveAll()
		s.log.WithFields(logrus.Fields{"conn": c.ID(), "reason": reason}).Debug("disconnected")
	})
}

func (s *Server) reply(c socketio.Conn, out models.Outcome) {
	data, err := json.Marshal(out)
	if err != nil {
		s.log.WithError(err).Error("encode outcome")
		return
	}
	c.Emit("action-result", string(data))
}

func (s *Server) emitState(c socketio.Conn, state models.GameState) {
	data, err := json.Marshal(state)
	if err != nil {
		s.log.WithError(err).Error("encode state")
		return
	}
	c.Emit("game-state", string(data))
}

func (s *Server) RoomChanged(info rooms.RoomInfo, state models.GameState) {
	data, err := json.Marshal(state)
	if err != nil {
		s.log.WithError(err).WithField("room", info.ID).Error("encode state")
		return
	}
	s.io.BroadcastToRoom("/", info.ID, "game-state", string(data))
	if s.gameOver(info.ID, state.Phase) {
		s.io.BroadcastToRoom("/", info.ID, "game-over", state.WinnerID)
	}
}

// gameOver reports whether this change is the first one to show the room
// finished. A finished room that empties out can host another game, so any
// other phase re-arms the announcement.
func (s *Server) gameOver(roomID string, phase models.Phase) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if phase != models.PhaseFinished {
		delete(s.finished, roomID)
		return false
	}
	if s.finished[roomID] {
		return false
	}
	s.finished[roomID] = true
	return true
}

func (s *Server) RoomClosed(roomID string) {
	s.mu.Lock()
	delete(s.finished, roomID)
	s.mu.Unlock()
	s.io.BroadcastToRoom("/", roomID, "room-closed", roomID)
}

// Serve blocks serving socket.io on addr.
func (s *Server) Serve(addr string, origins []string) error {
	go func() {
		if err := s.io.Serve(); err != nil {
			s.log.WithError(err).Error("socket.io loop stopped")
		}
	}()
	defer s.io.Close()

	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
	})

	mux := http.NewServeMux()
	mux.Handle("/socket.io/", s.io)
	s.log.WithField("addr", addr).Info("socket server listening")
	return http.ListenAndServe(addr, c.Handler(mux))
}
