package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/KiraMuss/AndersonStudio/config"
	"github.com/KiraMuss/AndersonStudio/internal/backend"
	"github.com/KiraMuss/AndersonStudio/internal/form"
	"github.com/KiraMuss/AndersonStudio/internal/slots"
)

// Headless driver of the booking form: the same state machine the widget view
// runs, wired to a live booking service. Useful for smoke-testing a deployment
// end to end.
func main() {
	var (
		name     = flag.String("name", "", "customer name")
		phone    = flag.String("phone", "", "phone number")
		email    = flag.String("email", "", "email (optional)")
		date     = flag.String("date", "", "date (YYYY-MM-DD, defaults to today)")
		slot     = flag.String("slot", "", "slot label, e.g. \"10:00 - 10:30\"; empty lists availability")
		services = flag.String("services", "", "comma-separated service names")
	)
	flag.Parse()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	loc, err := time.LoadLocation(cfg.Business.Timezone)
	if err != nil {
		log.Fatalf("load business timezone: %v", err)
	}
	policy := slots.NewPolicy(loc)

	open, err := slots.ParseHourMinute(cfg.Business.OpenTime)
	if err != nil {
		log.Fatalf("business hours: %v", err)
	}
	closing, err := slots.ParseHourMinute(cfg.Business.CloseTime)
	if err != nil {
		log.Fatalf("business hours: %v", err)
	}
	window := slots.Window{Open: open, Close: closing, SlotMinutes: cfg.Business.SlotMinutes}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Backend.TimeoutSeconds)*time.Second*3)
	defer cancel()

	client := backend.NewClient(cfg.Backend.BaseURL, time.Duration(cfg.Backend.TimeoutSeconds)*time.Second)

	groups, err := client.Services(ctx)
	if err != nil {
		log.Fatalf("fetch service catalog: %v", err)
	}
	names := make(map[string]struct{})
	for _, group := range groups {
		for _, service := range group.Services {
			names[service.Name] = struct{}{}
		}
	}

	f := form.New(window.Generate(), names, policy, client, client)

	f.SetName(*name)
	f.SetPhone(*phone)
	f.SetEmail(*email)
	for _, s := range strings.Split(*services, ",") {
		if s = strings.TrimSpace(s); s != "" {
			f.ToggleService(ctx, s)
		}
	}

	if *date != "" {
		d, err := policy.ParseDate(*date)
		if err != nil {
			log.Fatalf("invalid date: %v", err)
		}
		f.SetDate(ctx, d)
	} else {
		f.RefreshAvailability(ctx)
	}

	if *slot == "" {
		printAvailability(f)
		return
	}

	if !f.SelectSlot(*slot) {
		log.Fatalf("slot %q is not selectable", *slot)
	}

	if !f.RequestReview() {
		for field, msg := range f.Errors() {
			fmt.Printf("%s: %s\n", field, msg)
		}
		os.Exit(1)
	}

	if err := f.Confirm(ctx); err != nil {
		log.Fatalf("confirm: %v", err)
	}
	fmt.Println("booking confirmed")
}

func printAvailability(f *form.Form) {
	availability, date := f.Availability()
	fmt.Printf("availability for %s:\n", date.Format("2006-01-02"))
	for _, a := range availability {
		state := "free"
		switch {
		case a.Booked:
			state = "booked"
		case a.Past:
			state = "past"
		}
		fmt.Printf("  %s  %s\n", a.Slot.Label, state)
	}
}
