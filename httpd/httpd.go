// Package httpd implements the HTTP endpoint the workflow platform invokes the batch
// get, batch update and batch append tools through.
package httpd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/uhppoted/sheets-plugin/config"
	"github.com/uhppoted/sheets-plugin/tools"
)

// Credentials supplies the current service account key for each invocation.
type Credentials interface {
	Get() []byte
}

type Server struct {
	listen      string
	timeout     time.Duration
	secret      string
	credentials Credentials
	options     []option.ClientOption
	debug       bool
}

// NewServer returns a server for the configuration. The client options are applied
// to every Sheets client the server creates.
func NewServer(conf *config.Config, credentials Credentials, debug bool, opts ...option.ClientOption) *Server {
	return &Server{
		listen:      conf.Listen,
		timeout:     conf.Timeout,
		secret:      conf.Auth.Secret,
		credentials: credentials,
		options:     opts,
		debug:       debug,
	}
}

func (s *Server) Router() *gin.Engine {
	if !s.debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), Logger(s.debug))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	api := router.Group("/tools")
	api.Use(Auth(s.secret))
	{
		api.POST("/batch-get", s.batchGet)
		api.POST("/batch-update", s.batchUpdate)
		api.POST("/batch-append", s.batchAppend)
	}

	return router
}

// Run serves tool invocations until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.listen,
		Handler:      s.Router(),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: s.timeout + 60*time.Second,
	}

	errs := make(chan error, 1)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()

	infof("Listening on %v", s.listen)

	select {
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return srv.Shutdown(shutdown)

	case err := <-errs:
		return err
	}
}

// service returns a Sheets client for the credentials current at the time of the request.
func (s *Server) service(ctx context.Context) (*sheets.Service, error) {
	return tools.NewService(ctx, s.credentials.Get(), s.options...)
}

func (s *Server) deadline(c *gin.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(c.Request.Context(), s.timeout)
	}

	return context.WithCancel(c.Request.Context())
}

func sendError(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{
		"message": msg,
	})
}

func fail(c *gin.Context, err error) {
	warnf("%v %v %v  %v", requestID(c), c.Request.Method, c.Request.URL.Path, err)
	sendError(c, tools.StatusCode(err), tools.Describe(err))
}

func debugf(format string, args ...any) {
	log.Printf("%-5s %s", "DEBUG", fmt.Sprintf(format, args...))
}

func infof(format string, args ...any) {
	log.Printf("%-5s %s", "INFO", fmt.Sprintf(format, args...))
}

func warnf(format string, args ...any) {
	log.Printf("%-5s %s", "WARN", fmt.Sprintf(format, args...))
}
