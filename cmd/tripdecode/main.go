// Command tripdecode reads raw trip documents from a JSON export, a MongoDB
// collection or Redis, decodes them and prints one JSON summary line per
// trip. Failures and diagnostics go to stderr.
//
//	tripdecode -file trips.json -where 'trip.status == "completed"'
//	tripdecode -mongo-uri mongodb://localhost -mongo-db travel -strict
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/joho/godotenv"

	"trip-decoder/internal/batch"
	"trip-decoder/internal/config"
	"trip-decoder/internal/logger"
	"trip-decoder/internal/query"
	"trip-decoder/internal/store"
	"trip-decoder/internal/transport"
	"trip-decoder/internal/trip"
)

// Environment variables read after .env is loaded. Flags take precedence.
const (
	envMongoURI  = "MONGO_URI"
	envRedisAddr = "REDIS_ADDR"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

type options struct {
	configPath      string
	file            string
	mongoURI        string
	mongoDB         string
	mongoCollection string
	redisAddr       string
	redisPattern    string
	where           string
	workers         int
	strict          bool
	dump            bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("tripdecode", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	fs.StringVar(&opts.file, "file", "", "read trips from a JSON export")
	fs.StringVar(&opts.mongoURI, "mongo-uri", "", "read trips from MongoDB (default $"+envMongoURI+")")
	fs.StringVar(&opts.mongoDB, "mongo-db", "", "MongoDB database")
	fs.StringVar(&opts.mongoCollection, "mongo-collection", "", "MongoDB collection")
	fs.StringVar(&opts.redisAddr, "redis-addr", "", "read trips from Redis (default $"+envRedisAddr+")")
	fs.StringVar(&opts.redisPattern, "redis-pattern", "", "Redis key pattern")
	fs.StringVar(&opts.where, "where", "", "CEL filter over trip, e.g. 'trip.status == \"completed\"'")
	fs.IntVar(&opts.workers, "workers", 0, "parallel decoders (default from config)")
	fs.BoolVar(&opts.strict, "strict", false, "fail the itinerary on any bad daily plan or accommodation")
	fs.BoolVar(&opts.dump, "dump", false, "dump every decoded trip to stderr")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	return opts, nil
}

// loadConfig reads the config file, then overlays the environment and flags.
func loadConfig(opts options) (*config.Config, error) {
	cfg := config.Default()

	if opts.configPath != "" {
		loaded, err := config.LoadFile(opts.configPath)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	if v := os.Getenv(envMongoURI); v != "" {
		cfg.Store.Mongo.URI = v
	}

	if v := os.Getenv(envRedisAddr); v != "" {
		cfg.Store.Redis.Addr = v
	}

	overlay(&cfg.Store.File, opts.file)
	overlay(&cfg.Store.Mongo.URI, opts.mongoURI)
	overlay(&cfg.Store.Mongo.Database, opts.mongoDB)
	overlay(&cfg.Store.Mongo.Collection, opts.mongoCollection)
	overlay(&cfg.Store.Redis.Addr, opts.redisAddr)
	overlay(&cfg.Store.Redis.Pattern, opts.redisPattern)

	if opts.workers > 0 {
		cfg.Batch.Workers = opts.workers
	}

	if opts.strict {
		cfg.Decode.StrictItinerary = true
	}

	return cfg, nil
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(stderr, "tripdecode: load .env: %v\n", err)
	}

	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}

		fmt.Fprintf(stderr, "tripdecode: %v\n", err)

		return exitUsage
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "tripdecode: %v\n", err)
		return exitUsage
	}

	level := cfg.LogLevel()
	if v := os.Getenv(logger.EnvLevel); v != "" {
		if parsed, err := logger.ParseLevel(v); err == nil {
			level = parsed
		}
	}

	log := logger.New(stderr, level)

	var filter *query.Filter
	if opts.where != "" {
		filter, err = query.Compile(opts.where)
		if err != nil {
			log.Error("invalid filter", slog.String("where", opts.where), slog.Any("error", err))
			return exitUsage
		}
	}

	src, closeSource, err := store.Open(ctx, cfg.Store, log)
	if err != nil {
		log.Error("failed to open trip source", slog.Any("error", err))
		return exitFailure
	}

	defer func() {
		if err := closeSource(); err != nil {
			log.Warn("failed to close trip source", slog.Any("error", err))
		}
	}()

	started := time.Now()

	snaps, err := src.Fetch(ctx)
	if err != nil {
		log.Error("failed to read trips", slog.String("source", store.Describe(cfg.Store)), slog.Any("error", err))
		return exitFailure
	}

	decoder := batch.NewDecoder(trip.NewFromConfig(cfg, log), cfg.Batch.Workers, log)

	res, err := decoder.DecodeParallel(ctx, snaps)
	if err != nil {
		log.Error("decode interrupted", slog.Any("error", err))
		return exitFailure
	}

	trips := res.Trips
	if filter != nil {
		trips, err = filter.Select(trips)
		if err != nil {
			log.Error("filter failed", slog.Any("error", err))
			return exitFailure
		}
	}

	if err := writeSummaries(stdout, trips); err != nil {
		log.Error("failed to write output", slog.Any("error", err))
		return exitFailure
	}

	if opts.dump {
		for _, t := range trips {
			spew.Fdump(stderr, t)
		}
	}

	report(stderr, res)

	if err := res.Diagnostics.Error(); err != nil {
		log.Warn("some documents did not decode", slog.Int("failed", len(res.Failures)), slog.Any("error", err))
	}

	log.Info("decoded trips",
		slog.String("source", store.Describe(cfg.Store)),
		slog.Int("documents", len(snaps)),
		slog.Int("decoded", len(res.Trips)),
		slog.Int("selected", len(trips)),
		slog.Int("failed", len(res.Failures)),
		slog.Duration("elapsed", time.Since(started)),
	)

	return exitOK
}

// summary is the output line for one trip.
type summary struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	Status          string    `json:"status"`
	RawStatus       string    `json:"rawStatus,omitempty"`
	Destination     string    `json:"destination"`
	Destinations    []string  `json:"destinations"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	ItineraryState  string    `json:"itineraryState"`
	Legs            int       `json:"legs"`
	FlightCashTotal float64   `json:"flightCashTotal"`
	Currency        string    `json:"currency,omitempty"`
	Flights         []string  `json:"flights,omitempty"`
	Transport       []leg     `json:"transport,omitempty"`
}

// leg is one major transportation option in a summary.
type leg struct {
	ID       string `json:"id"`
	Mode     string `json:"mode"`
	Route    string `json:"route,omitempty"`
	Operator string `json:"operator,omitempty"`
	Booked   bool   `json:"booked"`
	Group    string `json:"group,omitempty"`
}

func routeLabel(r transport.Route) string {
	return r.Departure.Label() + "-" + r.Arrival.Label()
}

func transportLegs(p transport.Plan) []leg {
	groupOf := make(map[string]string)

	for _, g := range p.Groups {
		for _, o := range p.Members(g) {
			if _, ok := groupOf[o.ID]; !ok {
				groupOf[o.ID] = g.ID
			}
		}
	}

	legs := make([]leg, 0, len(p.Options))

	for _, o := range p.Options {
		info := o.Details.Summary()
		l := leg{
			ID:       o.ID,
			Mode:     o.Details.Mode().String(),
			Operator: info.Operator,
			Booked:   info.Booking.Booked,
			Group:    groupOf[o.ID],
		}

		if r, ok := transport.RouteOf(o.Details); ok {
			l.Route = routeLabel(r)
		}

		legs = append(legs, l)
	}

	return legs
}

func summarize(t trip.Trip) summary {
	s := summary{
		ID:             t.ID,
		UserID:         t.UserID,
		Status:         t.Status.String(),
		RawStatus:      t.RawStatus,
		Destination:    t.Destination(),
		Destinations:   t.Destinations,
		StartDate:      t.StartDate,
		EndDate:        t.EndDate,
		ItineraryState: t.ItineraryState.String(),
	}

	if it := t.Itinerary; it != nil {
		s.Legs = len(it.Flights.Legs())
		s.FlightCashTotal = it.Flights.TotalCost.TotalCashValue
		s.Currency = it.TotalCost.Currency

		for _, f := range it.Flights.Legs() {
			s.Flights = append(s.Flights, routeLabel(f.Route))
		}

		if len(it.MajorTransportation.Options) > 0 {
			s.Transport = transportLegs(it.MajorTransportation)
		}
	}

	return s
}

func writeSummaries(w io.Writer, trips []trip.Trip) error {
	enc := json.NewEncoder(w)

	for _, t := range trips {
		if err := enc.Encode(summarize(t)); err != nil {
			return err
		}
	}

	return nil
}

func report(w io.Writer, res batch.Result) {
	for _, f := range res.Failures {
		fmt.Fprintf(w, "FAIL %v\n", f)
	}

	for _, d := range res.Diagnostics.All() {
		fmt.Fprintln(w, d.String())
	}
}
