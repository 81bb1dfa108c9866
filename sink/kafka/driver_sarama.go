package kafka

import (
	"fmt"
	"strconv"

	"github.com/IBM/sarama"

	"uciconv/internal/frame"
	"uciconv/internal/logging"
	"uciconv/sink"
)

type driver struct {
	cfg     Config
	p       sarama.SyncProducer
	pending []*sarama.ProducerMessage

	// newProducer is swapped in tests.
	newProducer func([]string, *sarama.Config) (sarama.SyncProducer, error)
}

func newDriver() *driver {
	return &driver{newProducer: sarama.NewSyncProducer}
}

func saramaConfig(cfg Config) (*sarama.Config, error) {
	ver, err := sarama.ParseKafkaVersion(cfg.Version)
	if err != nil {
		return nil, err
	}
	sc := sarama.NewConfig()
	sc.Version = ver
	sc.ClientID = cfg.ClientID
	sc.Producer.RequiredAcks = sarama.RequiredAcks(cfg.RequiredAcks)
	sc.Producer.Return.Successes = true
	sc.Producer.Return.Errors = true
	if cfg.TLSEn {
		sc.Net.TLS.Enable = true
	}
	if cfg.SASLUser != "" {
		sc.Net.SASL.Enable = true
		sc.Net.SASL.User, sc.Net.SASL.Password = cfg.SASLUser, cfg.SASLPass
	}
	return sc, nil
}

func (d *driver) Configure(c any) error {
	cfg, ok := c.(Config)
	if !ok {
		return fmt.Errorf("kafka-sink: want Config, got %T", c)
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	d.cfg = cfg

	sc, err := saramaConfig(cfg)
	if err != nil {
		return fmt.Errorf("kafka-sink: %w", err)
	}
	d.p, err = d.newProducer(cfg.Brokers, sc)
	if err != nil {
		return fmt.Errorf("kafka-sink: %w", err)
	}
	d.pending = make([]*sarama.ProducerMessage, 0, cfg.BatchSize)
	return nil
}

func (d *driver) Push(f frame.Frame) error {
	v := f.Value
	if n := len(v); n > 0 && v[n-1] == '\n' {
		v = v[:n-1]
	}
	d.pending = append(d.pending, &sarama.ProducerMessage{
		Topic: d.cfg.Topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(f.Line, 10)),
		Value: sarama.ByteEncoder(append([]byte(nil), v...)),
	})
	if len(d.pending) >= d.cfg.BatchSize {
		return d.flush()
	}
	return nil
}

func (d *driver) Close() error {
	if d.p == nil {
		return nil
	}
	err := d.flush()
	if cerr := d.p.Close(); err == nil {
		err = cerr
	}
	d.p = nil
	return err
}

/* ────────── sink.Aborter ────────── */

// Abort cannot take back messages already sent; it only decides what
// happens to the unsent batch.
func (d *driver) Abort(keep bool) error {
	if d.p == nil {
		return nil
	}
	if !keep {
		logging.L().Warn("kafka-sink: dropping unsent batch", "topic", d.cfg.Topic, "count", len(d.pending))
		d.pending = d.pending[:0]
	}
	return d.Close()
}

func (d *driver) flush() error {
	if len(d.pending) == 0 {
		return nil
	}
	if err := d.p.SendMessages(d.pending); err != nil {
		n := len(d.pending)
		// part of the batch may have been delivered; never resend it
		d.pending = d.pending[:0]
		return fmt.Errorf("kafka-sink: send %d messages: %w", n, err)
	}
	logging.L().Debug("kafka-sink: batch sent", "topic", d.cfg.Topic, "count", len(d.pending))
	d.pending = d.pending[:0]
	return nil
}

func init() { sink.Register("kafka", func() sink.Adapter { return newDriver() }) }
