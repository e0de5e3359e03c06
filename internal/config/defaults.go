package config

import "time"

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "event-organizer",
			TokenDuration: time.Hour,
			BcryptCost:    10,
		},
		Storage: Storage{
			DB: DB{
				MaxOpenConns: 10,
				MaxIdleConns: 5,
			},
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
		Notifier: Notifier{
			Driver:     NotifierDriverLog,
			MailFrom:   "no-reply@event-organizer.local",
			Exchange:   "events",
			RoutingKey: "event.sale",
			Timeout:    10 * time.Second,
		},
		Workers: Workers{
			NotificationWorkers: 4,
			QueueSize:           256,
		},
	}
}
