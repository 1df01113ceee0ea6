package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/theapemachine/wicker-go/pkg/service"
	"github.com/theapemachine/wicker-go/pkg/session"
	"github.com/theapemachine/wicker-go/pkg/stores"
)

var (
	portFlag    int
	hostFlag    string
	backendFlag string

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the session server",
		Long:  longServe,
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := buildContainer()
			if err != nil {
				return err
			}

			store := session.NewWebStore(viper.GetString("app.key"), container)

			srv := service.NewServer(service.Config{
				AppName:    viper.GetString("app.key"),
				CookieName: viper.GetString("session.cookie"),
			}, store, container)

			addr := fmt.Sprintf("%s:%d", hostFlag, portFlag)
			return srv.Start(addr)
		},
	}
)

// buildContainer constructs the configured container backend.
func buildContainer() (stores.Container, error) {
	name := backendFlag
	if name == "" {
		name = viper.GetString("session.backend")
	}

	ttl := viper.GetDuration("session.ttl")

	switch name {
	case "memory", "":
		opts := []stores.MemoryOption{}
		if ttl > 0 {
			opts = append(opts, stores.WithExpiration(ttl))
		}
		return stores.NewMemory(opts...), nil
	case "redis":
		client := backend.NewClient(&backend.Options{
			Addr: viper.GetString("redis.addr"),
		})
		log.Info("using redis session backend", "addr", viper.GetString("redis.addr"))

		opts := []stores.RedisOption{
			stores.WithPrefix(viper.GetString("redis.prefix")),
		}
		if ttl > 0 {
			opts = append(opts, stores.WithTTL(ttl))
		}
		return stores.NewRedisFromClient(client, opts...), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", name)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&portFlag, "port", "p", 3210, "Port to serve on")
	serveCmd.Flags().StringVarP(&hostFlag, "host", "H", "0.0.0.0", "Host address to bind to")
	serveCmd.Flags().StringVarP(&backendFlag, "backend", "b", "", "Session backend (memory or redis)")
}

var longServe = `
Serve the session demo server with the configured container backend.

Examples:
  # Serve with the in-memory backend on port 8080
  wicker-go serve --port 8080

  # Serve with the Redis backend
  wicker-go serve --backend redis
`
