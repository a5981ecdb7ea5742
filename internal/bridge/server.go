// Package bridge recebe a inclinação de um celular via WebSocket e a entrega
// ao loop de frames como amostras de input.
package bridge

import (
	"context"
	_ "embed"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"Skyline/internal/input"
	"Skyline/internal/metrics"
)

//go:embed page.html
var page []byte

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// message é o formato enviado pela página: aceleração com gravidade em m/s².
type message struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// Server é a ponte HTTP. As amostras saem por Samples(); quem consome é
// sempre a thread do loop de frames.
type Server struct {
	addr    string
	samples chan input.Sample
	router  *mux.Router
	srv     *http.Server

	log     *zap.Logger
	metrics *metrics.Metrics
}

// New cria a ponte. buffer é o tamanho da fila de amostras pendentes.
func New(addr string, buffer int, m *metrics.Metrics, log *zap.Logger) *Server {
	if buffer < 1 {
		buffer = 1
	}
	s := &Server{
		addr:    addr,
		samples: make(chan input.Sample, buffer),
		log:     log.Named("bridge"),
		metrics: m,
	}

	r := mux.NewRouter()
	r.HandleFunc("/", s.handlePage).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.handleWS)
	if m != nil {
		r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
	}
	s.router = r
	return s
}

// Samples é o canal de amostras recebidas.
func (s *Server) Samples() <-chan input.Sample {
	return s.samples
}

// Handler retorna o roteador com log de requisições e recuperação de pânico.
func (s *Server) Handler() http.Handler {
	w := zap.NewStdLog(s.log).Writer()
	return handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(
		handlers.CombinedLoggingHandler(w, s.router))
}

// Run escuta em addr até ctx ser cancelado.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return errors.Wrapf(err, "escutando em %s", s.addr)
	}
	return s.Serve(ctx, ln)
}

// Serve atende no listener dado até ctx ser cancelado.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.srv = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.log.Warn("erro ao encerrar ponte", zap.Error(err))
		}
	}()

	s.log.Info("ponte de inclinação ouvindo", zap.String("addr", ln.Addr().String()))
	err := s.srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		<-done
		s.log.Info("ponte de inclinação encerrada")
		return nil
	}
	return errors.Wrap(err, "servindo ponte")
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("erro no upgrade do WebSocket", zap.Error(err))
		return
	}
	defer conn.Close()

	s.log.Info("dispositivo conectado", zap.String("remote", conn.RemoteAddr().String()))
	if s.metrics != nil {
		s.metrics.TiltClients.Inc()
		defer s.metrics.TiltClients.Dec()
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("erro ao ler mensagem", zap.Error(err))
			}
			s.log.Info("dispositivo desconectado", zap.String("remote", conn.RemoteAddr().String()))
			return
		}

		var msg message
		if err := json.Unmarshal(data, &msg); err != nil {
			s.log.Debug("mensagem inválida ignorada", zap.Error(err))
			continue
		}
		s.push(input.Sample{X: msg.X, Y: msg.Y})
	}
}

// push entrega sem bloquear; com a fila cheia a amostra é descartada.
func (s *Server) push(sample input.Sample) {
	select {
	case s.samples <- sample:
		if s.metrics != nil {
			s.metrics.TiltSamples.Inc()
		}
	default:
		if s.metrics != nil {
			s.metrics.TiltDropped.Inc()
		}
	}
}
