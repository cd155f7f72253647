// Package kafka publishes classified SQL errors to Apache Kafka.
//
// A Publisher is an observability.Observer. Every observed operation that
// produced a *sqlerr.Error becomes an ErrorEvent, encoded as JSON and keyed by
// its SQLSTATE:
//
//	{"time":"2026-01-02T15:04:05Z","service":"orders","component":"postgres",
//	 "operation":"translate","function":"SQLExecute","source":"pgconn",
//	 "sqlstate":"23505","class":"23","kind":"IntegrityError",
//	 "records":1,"message":"duplicate key value violates unique constraint","duration_us":12}
//
// Events are queued in memory and written in batches by a background
// goroutine, so observing never blocks the code that hit the error. When the
// queue is full events are dropped and counted.
//
// # Usage
//
//	pub, err := kafka.NewPublisher(kafka.Config{
//	    Brokers: []string{"localhost:9092"},
//	    Topic:   "sql-errors",
//	    Service: "orders",
//	    Operations: []string{"translate"},
//	})
//	if err != nil {
//	    return err
//	}
//	if err := pub.Start(ctx); err != nil {
//	    return err
//	}
//	defer pub.Close(context.Background())
//
//	translator := postgres.NewTranslator(cfg).WithObserver(pub)
//
// A translator reports one "translate" operation per failure; its factory is
// not observed. Attaching the publisher to a translator and also to a
// separate sqlerr.Factory reports both layers. Use Operations to keep one.
//
// TLS and SASL (PLAIN, SCRAM-SHA-256, SCRAM-SHA-512) are configured through
// Config.TLS and Config.SASL.
package kafka
