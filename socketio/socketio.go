package socketio

import (
	"context"
	"strconv"
	"strings"
	"time"

	"chat-service/config"
	"chat-service/database"
	"chat-service/messenger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	elog "github.com/zishang520/engine.io/v2/log"
	"github.com/zishang520/socket.io-go-redis/adapter"
	r_type "github.com/zishang520/socket.io-go-redis/types"
	"github.com/zishang520/socket.io/v2/socket"
)

// CredentialCookie is the HTTP-only cookie the auth service sets.
const CredentialCookie = "jwt"

// Server wraps the socket.io server and routes events into per-user rooms.
type Server struct {
	io *socket.Server
}

// Init mounts the socket.io endpoint on the Fiber app. The handshake
// middleware authenticates the credential (query token or jwt cookie) and
// refuses the connection outright on failure: an unauthenticated socket
// never joins a room and never reaches the session registry.
func Init(app *fiber.App, auth messenger.Authenticator) *Server {
	elog.DEBUG = config.ConfigBool("SOCKET_DEBUG", false)

	options := socket.DefaultServerOptions()
	options.SetServeClient(true)
	options.SetAllowEIO3(true)
	options.SetPingInterval(25 * time.Second)
	options.SetPingTimeout(20 * time.Second)
	options.SetConnectTimeout(10 * time.Second)

	if config.Config("SOCKET_ADAPTER") == "redis" {
		db, _ := strconv.Atoi(config.Config("SOCKET_ADAPTER_REDIS_DB"))
		options.SetAdapter(&adapter.RedisAdapterBuilder{
			Redis: r_type.NewRedisClient(context.Background(), database.Redis[db]),
			Opts:  &adapter.RedisAdapterOptions{},
		})
	}

	io := socket.NewServer(nil, nil)

	io.Use(func(client *socket.Socket, next func(*socket.ExtendedError)) {
		userID, err := auth.Authenticate(credential(client))
		if err != nil {
			next(socket.NewExtendedError(messenger.ErrAuthFailed.Message, nil))
			return
		}

		client.SetData(userID)
		next(nil)
	})

	app.Get("/socket.io/", adaptor.HTTPHandler(io.ServeHandler(options)))
	app.Post("/socket.io/", adaptor.HTTPHandler(io.ServeHandler(options)))

	return &Server{io: io}
}

// credential extracts the raw token from the handshake: the "token" query
// parameter first, then the jwt cookie the browser clients rely on.
func credential(client *socket.Socket) string {
	if token, ok := client.Conn().Request().Query().Get("token"); ok && token != "" {
		return token
	}
	if header, ok := client.Conn().Request().Headers().Get("Cookie"); ok {
		return cookieValue(header, CredentialCookie)
	}
	return ""
}

func cookieValue(header, name string) string {
	for _, part := range strings.Split(header, ";") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) == 2 && kv[0] == name {
			return kv[1]
		}
	}
	return ""
}

// IO exposes the underlying server for event registration.
func (s *Server) IO() *socket.Server {
	return s.io
}

// Emit sends an event to every live session in the user's room. No
// sessions, no-op.
func (s *Server) Emit(userID uint, event string, payload any) {
	s.io.To(Room(userID)).Emit(event, payload)
}

// Broadcast sends an event to every connected session.
func (s *Server) Broadcast(event string, payload any) {
	s.io.FetchSockets()(func(sockets []*socket.RemoteSocket, _ error) {
		for _, remote := range sockets {
			remote.Emit(event, payload)
		}
	})
}

func (s *Server) Close() {
	s.io.Close(nil)
}

// Room names the per-user room sockets join after registration.
func Room(userID uint) socket.Room {
	return socket.Room(strconv.FormatUint(uint64(userID), 10))
}
