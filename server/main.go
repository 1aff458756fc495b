package main

import (
	"log"
	"net"
	"net/rpc"

	"multicalc.com/server/api"
	"multicalc.com/server/config"
	"multicalc.com/server/icalc"
	"multicalc.com/server/shared"
)

func main() {
	log.Println("Starting Calculator Server...")

	// Load configuration
	config.Load()

	calc := icalc.NewCalc()
	log.Printf("Calculator ready: %s", calc)

	calcRPC := shared.NewCalcRPC(calc)
	if err := rpc.Register(calcRPC); err != nil {
		log.Fatalf("Failed to register RPC: %s", err)
	}

	// RPC endpoint for terminal clients
	listener, err := net.Listen("tcp", config.RPCAddr)
	if err != nil {
		log.Fatalf("Failed to listen on %s: %s", config.RPCAddr, err)
	}
	log.Printf("RPC Server listening on %s (for terminal clients)", config.RPCAddr)

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				log.Printf("Failed to accept connection: %s", err)
				continue
			}
			go rpc.ServeConn(conn)
		}
	}()

	apiServer := api.NewServer(calc)
	log.Printf("Starting HTTP API Server on %s", config.HTTPAddr)
	log.Fatal(apiServer.Start(config.HTTPAddr))
}
