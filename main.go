package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/matt-g-everett/ledanim/anim"
	"github.com/matt-g-everett/ledanim/api"
	"github.com/matt-g-everett/ledanim/stream"
)

type app struct {
	Config     stream.Config
	Client     mqtt.Client
	Loop       *anim.Loop
	Streamer   *stream.Streamer
	Controller *stream.Controller
}

func newApp(config stream.Config) (*app, error) {
	a := new(app)
	a.Config = config

	rnd := rand.New(rand.NewSource(time.Now().UTC().UnixNano()))

	a.Loop = anim.NewLoop(config.Animation.FrameRate)
	sched := anim.NewScheduler(a.Loop, nil)

	clientID := config.Mqtt.ClientID
	if clientID == "" {
		clientID = "ledanim-" + uuid.NewString()
	}
	options := mqtt.NewClientOptions().
		AddBroker(config.Mqtt.URL).
		SetClientID(clientID).
		SetUsername(config.Mqtt.Username).
		SetPassword(config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(a.handleOnConnect)
	a.Client = mqtt.NewClient(options)

	a.Streamer = stream.NewStreamer(a.Client, sched, config.Mqtt.Topics.Stream, config.Mqtt.QoS)

	scenes, err := stream.NewScenes(sched, config.Animation, rnd)
	if err != nil {
		return nil, err
	}
	a.Controller, err = stream.NewController(sched, config.Animation, scenes, rnd, a.Streamer.Invalidate)
	if err != nil {
		return nil, err
	}
	a.Streamer.SetAnimation(a.Controller)

	return a, nil
}

func (a *app) handleOnConnect(client mqtt.Client) {
	log.Println("Connected")
	// Repaint the device with whatever is showing.
	a.Loop.Post(a.Streamer.Invalidate)
}

func (a *app) run(ctx context.Context) error {
	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	defer a.Client.Disconnect(250)

	a.Loop.Post(a.Controller.Start)
	go a.Controller.Run(ctx, a.Loop.Post)

	server := api.NewApi(a.Loop, a.Controller)
	go func() {
		if err := server.Serve(a.Config.API.Listen); err != nil {
			log.Printf("API stopped: %v", err)
		}
	}()

	return a.Loop.Run(ctx)
}

func main() {
	// mqtt.DEBUG = log.New(os.Stdout, "", 0)
	mqtt.ERROR = log.New(os.Stdout, "[mqtt] ERROR ", 0)
	mqtt.WARN = log.New(os.Stdout, "[mqtt] WARN ", 0)

	// Parse command line parameters
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	flag.Parse()

	// Read the config
	config, err := stream.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Printf("Config: %+v", config.Animation)

	a, err := newApp(config)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.run(ctx); err != nil && err != context.Canceled {
		log.Fatalf("Stopped: %v", err)
	}
	log.Println("Stopped")
}
