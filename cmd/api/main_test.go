package main

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malikaashish/Inventory-Management-System/pkg/logger"
)

func TestListen_PuertoOcupadoCancelaContexto(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	done := make(chan struct{})
	go func() {
		listen(app, busy.Addr().String(), logger.Nop(), cancel)
		close(done)
	}()

	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("el contexto no se canceló")
	}
	<-done
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}
