package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

func main() {
	port := pflag.Uint16("port", 0, "listen port (0 = config file / default)")
	configPath := pflag.String("config", "", "path to YAML seed config")
	logFilePath := pflag.String("logfile", "mixxxd.log", "log file path (empty disables)")
	debug := pflag.Bool("debug", false, "log every request")
	mdns := pflag.Bool("mdns", true, "advertise the API over mDNS")
	pflag.Parse()

	// Set up logging
	if *logFilePath != "" {
		logFile, err := os.OpenFile(*logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			log.Printf("Failed to open log file: %v", err)
		} else {
			defer logFile.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, logFile))
		}
	}
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// .env is optional; environment always applies.
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded settings from .env")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	applyEnv(&cfg)
	if *port != 0 {
		cfg.Port = int(*port)
	}

	engine := buildEngine(cfg)
	server := NewRestServer(engine, engine)
	server.SetDebug(*debug)

	if err := server.Start(uint16(cfg.Port)); err != nil {
		log.Fatalf("Failed to start REST server: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *mdns {
		go advertiseAPI(ctx, "Mixxx REST API", int(server.Port()))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Println("Shutting down server...")
	cancel()
	server.Stop()
}
