package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/omnirelay/console/agent"
	"github.com/omnirelay/console/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type cfg struct {
	config.Config
}
type cli struct {
	cfg cfg
}

func setupFlags(cmd *cobra.Command) error {
	cmd.Flags().String("config-file", "", "Path to config file.")
	cmd.Flags().Int("http-port", 8080, "http port for rest endpoints")
	cmd.Flags().String("storage-impl", "postgres", "implementation of underline storage")
	cmd.Flags().String("postgres-url", "postgres://localhost:5432/omnirelay", "postgres connection url")
	cmd.Flags().Int("postgres-max-conns", 10, "max connections in postgres pool")
	cmd.Flags().Int("postgres-min-conns", 2, "min connections in postgres pool")
	cmd.Flags().String("redis-addr", "", "comma separated list of redis host:port, empty disables the flow cache")
	cmd.Flags().String("namespace", "omnirelay", "namespace used in redis keys")
	cmd.Flags().String("jwt-secret", "", "secret used to sign session tokens")
	cmd.Flags().Int("session-ttl", 24, "session token lifetime in hours")
	cmd.Flags().String("dev-tenant", "", "tenant id used when no session is present, development only")
	cmd.Flags().String("dev-user", "", "user id paired with dev-tenant")
	cmd.Flags().String("cors-origins", "*", "comma separated list of allowed cors origins")
	return viper.BindPFlags(cmd.Flags())
}

func (c *cli) setupConfig(cmd *cobra.Command, args []string) error {
	var err error

	configFile, err := cmd.Flags().GetString("config-file")
	if err != nil {
		return err
	}
	viper.SetConfigFile(configFile)

	if err = viper.ReadInConfig(); err != nil {
		// it's ok if config file doesn't exist
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	c.cfg.HttpPort = viper.GetInt("http-port")
	c.cfg.StorageType = config.StorageType(viper.GetString("storage-impl"))
	c.cfg.PostgresConfig.URL = viper.GetString("postgres-url")
	c.cfg.PostgresConfig.MaxConns = viper.GetInt("postgres-max-conns")
	c.cfg.PostgresConfig.MinConns = viper.GetInt("postgres-min-conns")
	if addrs := viper.GetString("redis-addr"); addrs != "" {
		c.cfg.RedisConfig.Addrs = strings.Split(addrs, ",")
	}
	c.cfg.RedisConfig.Namespace = viper.GetString("namespace")
	c.cfg.JwtSecret = viper.GetString("jwt-secret")
	c.cfg.SessionTTLHours = viper.GetInt("session-ttl")
	c.cfg.DevTenantId = viper.GetString("dev-tenant")
	c.cfg.DevUserId = viper.GetString("dev-user")
	c.cfg.CorsOrigins = strings.Split(viper.GetString("cors-origins"), ",")
	return nil
}

func (c *cli) run(cmd *cobra.Command, args []string) error {
	var err error
	agent, err := agent.New(c.cfg.Config)
	if err != nil {
		panic(err)
	}
	err = agent.Start()
	if err != nil {
		panic(err)
	}
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	return agent.Shutdown()
}

func main() {
	cli := &cli{}

	cmd := &cobra.Command{
		Use:     "omnirelay",
		PreRunE: cli.setupConfig,
		RunE:    cli.run,
	}

	if err := setupFlags(cmd); err != nil {
		log.Fatal(err)
	}

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
