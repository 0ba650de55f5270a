//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	pgUser     = "test"
	pgPassword = "testpass"
)

// backing holds the containers shared by every suite in one test binary.
// They are reaped by testcontainers when the process exits.
type backing struct {
	postgres endpoint
	redis    endpoint
}

type endpoint struct {
	host string
	port string
}

func (e endpoint) addr() string { return net.JoinHostPort(e.host, e.port) }

func (e endpoint) postgresDSN(database string) string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable", pgUser, pgPassword, e.addr(), database)
}

var startBacking = sync.OnceValues(func() (backing, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	var b backing
	var pgErr, rdErr error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		b.postgres, pgErr = run(ctx, postgresRequest(), "5432/tcp")
	}()
	go func() {
		defer wg.Done()
		b.redis, rdErr = run(ctx, redisRequest(), "6379/tcp")
	}()
	wg.Wait()

	if pgErr != nil {
		return backing{}, fmt.Errorf("postgres container: %w", pgErr)
	}
	if rdErr != nil {
		return backing{}, fmt.Errorf("redis container: %w", rdErr)
	}
	return b, nil
})

func postgresRequest() testcontainers.ContainerRequest {
	return testcontainers.ContainerRequest{
		Image:        "postgres:17",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     pgUser,
			"POSTGRES_PASSWORD": pgPassword,
			"POSTGRES_DB":       "postgres",
		},
		Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=512m"},
		Cmd: []string{
			"postgres",
			"-c", "fsync=off",
			"-c", "full_page_writes=off",
			"-c", "synchronous_commit=off",
			"-c", "max_connections=200",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
			return endpoint{host: host, port: port.Port()}.postgresDSN("postgres")
		}).WithStartupTimeout(time.Minute),
		Labels: map[string]string{"purpose": "booking-e2e"},
	}
}

func redisRequest() testcontainers.ContainerRequest {
	return testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		Labels:       map[string]string{"purpose": "booking-e2e"},
	}
}

func run(ctx context.Context, req testcontainers.ContainerRequest, port nat.Port) (endpoint, error) {
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return endpoint{}, err
	}
	host, err := c.Host(ctx)
	if err != nil {
		return endpoint{}, err
	}
	mapped, err := c.MappedPort(ctx, port)
	if err != nil {
		return endpoint{}, err
	}
	return endpoint{host: host, port: mapped.Port()}, nil
}
