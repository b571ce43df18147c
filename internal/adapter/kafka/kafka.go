package kafka

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/animatoon/storefront/internal/core/domain"
	"github.com/animatoon/storefront/internal/core/port"
	"github.com/animatoon/storefront/pkg/schema"
	"github.com/lovoo/goka"
	"github.com/twmb/franz-go/pkg/kgo"
)

var (
	ErrTooFewOpts       = errors.New("too few options")
	ErrInvalidValueType = errors.New("invalid value type")
)

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type ConsumerClient interface {
	PollFetches(context.Context) kgo.Fetches
	CommitUncommittedOffsets(context.Context) error
	Close()
}

type Encoder interface {
	Encode(v any) ([]byte, error)
}

type Decoder interface {
	Decode(b []byte, v any) error
}

type Serde interface {
	Encoder
	Decoder
}

type ProducerOpt func(*producerOpts) error

type producerOpts struct {
	cl      ProducerClient
	encoder Encoder
}

func ProducerClientOpt(
	ctx context.Context, seedBrokers []string, topic string, tlsCfg *tls.Config,
) ProducerOpt {
	return func(opts *producerOpts) error {
		kgoOpts := []kgo.Opt{
			kgo.SeedBrokers(seedBrokers...),
			kgo.DefaultProduceTopicAlways(),
			kgo.DefaultProduceTopic(topic),
			kgo.RequiredAcks(kgo.AllISRAcks()),
			kgo.AllowAutoTopicCreation(),
		}
		if tlsCfg != nil {
			kgoOpts = append(kgoOpts, kgo.DialTLSConfig(tlsCfg))
		}

		cl, err := kgo.NewClient(kgoOpts...)
		if err != nil {
			return err
		}

		if err := cl.Ping(ctx); err != nil {
			return err
		}
		opts.cl = cl
		return nil
	}
}

func ProducerEncoderOpt(encoder Encoder) ProducerOpt {
	return func(opts *producerOpts) error {
		if encoder == nil {
			return errors.New("encoder is nil")
		}
		opts.encoder = encoder
		return nil
	}
}

type ConsumerOpt func(*consumerOpts) error

type consumerOpts struct {
	cl                  ConsumerClient
	decoder             Decoder
	ordersSaver         port.OrdersSaver
	estimateEventsSaver port.EstimateEventsSaver
}

func (co *consumerOpts) apply(opts ...ConsumerOpt) error {
	for _, opt := range opts {
		if err := opt(co); err != nil {
			return err
		}
	}
	return nil
}

func ConsumerClientOpt(
	seedBrokers []string, topic, group string, tlsCfg *tls.Config,
) ConsumerOpt {
	return func(co *consumerOpts) error {
		kgoOpts := []kgo.Opt{
			kgo.SeedBrokers(seedBrokers...),
			kgo.ConsumeTopics(topic),
			kgo.ConsumerGroup(group),
			kgo.DisableAutoCommit(),
		}
		if tlsCfg != nil {
			kgoOpts = append(kgoOpts, kgo.DialTLSConfig(tlsCfg))
		}

		cl, err := kgo.NewClient(kgoOpts...)
		if err != nil {
			return err
		}
		co.cl = cl
		return nil
	}
}

func ConsumerDecoderOpt(decoder Decoder) ConsumerOpt {
	return func(co *consumerOpts) error {
		if decoder == nil {
			return errors.New("decoder is nil")
		}
		co.decoder = decoder
		return nil
	}
}

func OrdersSaverOpt(s port.OrdersSaver) ConsumerOpt {
	return func(co *consumerOpts) error {
		if s == nil {
			return errors.New("orders saver is nil")
		}
		co.ordersSaver = s
		return nil
	}
}

func EstimateEventsSaverOpt(s port.EstimateEventsSaver) ConsumerOpt {
	return func(co *consumerOpts) error {
		if s == nil {
			return errors.New("estimate events saver is nil")
		}
		co.estimateEventsSaver = s
		return nil
	}
}

// MakeTLSConfig builds the broker TLS config from certificate filepaths.
func MakeTLSConfig(ca, cert, key string) (*tls.Config, error) {
	const op = "kafka.MakeTLSConfig"

	caCert, err := os.ReadFile(ca)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: failed to read CA certificate file: %w", op, err,
		)
	}

	caCertPool := x509.NewCertPool()
	if !caCertPool.AppendCertsFromPEM(caCert) {
		return nil, fmt.Errorf("%s: failed to parse CA certificate", op)
	}

	clientCert, err := tls.LoadX509KeyPair(cert, key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &tls.Config{
		RootCAs:      caCertPool,
		Certificates: []tls.Certificate{clientCert},
	}, nil
}

func withNonlogProcOpt() goka.ProcessorOption {
	return goka.WithLogger(log.New(io.Discard, "", 0))
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}

// destinationPrefix is the stream partitioning key for estimate events.
func destinationPrefix(cep string) string {
	if len(cep) < 3 {
		return cep
	}
	return cep[:3]
}

func estimateEventToSchemaV1(v domain.EstimateEvent) (s schema.EstimateEventV1) {
	s.Kind = string(v.Kind)
	s.OriginCEP = v.OriginCEP
	s.DestinationCEP = v.DestinationCEP
	s.Reason = v.Reason
	s.AtUnixMs = v.At.UnixMilli()

	s.Quotes = make([]schema.ShippingQuoteV1, len(v.Quotes))
	for i, q := range v.Quotes {
		s.Quotes[i] = schema.ShippingQuoteV1{
			ServiceCode:      q.ServiceCode,
			ServiceName:      q.ServiceName,
			Price:            q.Price,
			DeliveryDays:     int64(q.DeliveryDays),
			HomeDelivery:     q.HomeDelivery,
			SaturdayDelivery: q.SaturdayDelivery,
		}
	}
	return s
}

func schemaV1ToEstimateEvent(s schema.EstimateEventV1) (v domain.EstimateEvent) {
	v.Kind = domain.EstimateEventKind(s.Kind)
	v.OriginCEP = s.OriginCEP
	v.DestinationCEP = s.DestinationCEP
	v.Reason = s.Reason
	v.At = time.UnixMilli(s.AtUnixMs).UTC()

	v.Quotes = make([]domain.ShippingQuote, len(s.Quotes))
	for i, q := range s.Quotes {
		v.Quotes[i] = domain.ShippingQuote{
			ServiceCode:      q.ServiceCode,
			ServiceName:      q.ServiceName,
			Price:            q.Price,
			DeliveryDays:     int(q.DeliveryDays),
			HomeDelivery:     q.HomeDelivery,
			SaturdayDelivery: q.SaturdayDelivery,
		}
	}
	return v
}

func placedOrderToSchemaV1(v domain.PlacedOrder) (s schema.PlacedOrderV1) {
	s.ProductID = v.Summary.ProductID
	s.ProductName = v.Summary.ProductName
	s.UnitPrice = v.Summary.UnitPrice
	s.Options = v.Summary.Options
	if s.Options == nil {
		s.Options = map[string]string{}
	}
	s.ShippingService = v.Summary.ShippingService
	s.ShippingPrice = v.Summary.ShippingPrice
	s.Total = v.Summary.Total
	s.PaymentReference = v.PaymentReference
	s.PlacedAtUnixMs = v.PlacedAt.UnixMilli()
	return s
}

func schemaV1ToPlacedOrder(s schema.PlacedOrderV1) (v domain.PlacedOrder) {
	v.Summary.ProductID = s.ProductID
	v.Summary.ProductName = s.ProductName
	v.Summary.UnitPrice = s.UnitPrice
	v.Summary.Options = s.Options
	v.Summary.ShippingService = s.ShippingService
	v.Summary.ShippingPrice = s.ShippingPrice
	v.Summary.Total = s.Total
	v.PaymentReference = s.PaymentReference
	v.PlacedAt = time.UnixMilli(s.PlacedAtUnixMs).UTC()
	return v
}
