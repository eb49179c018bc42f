package workers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/orbitmatch/internal/events"
)

// EventWorkerPool drains the match event stream and fans each notification
// out to the owning company's pub/sub channel, where websocket feeds pick
// it up.
type EventWorkerPool struct {
	Redis      *redis.Client
	NumWorkers int

	Logger logrus.FieldLogger

	Stream         string
	Group          string
	ConsumerPrefix string
	Block          time.Duration
}

func (p *EventWorkerPool) Start(ctx context.Context) error {
	if p.Redis == nil {
		return errors.New("EventWorkerPool missing dependency: Redis must be set")
	}
	if p.Stream == "" {
		p.Stream = events.DefaultStream
	}
	if p.Group == "" {
		p.Group = "match-notifiers"
	}
	if p.ConsumerPrefix == "" {
		p.ConsumerPrefix = "c"
	}
	if p.NumWorkers <= 0 {
		p.NumWorkers = 5
	}
	if p.Block <= 0 {
		p.Block = 5 * time.Second
	}
	if p.Logger == nil {
		p.Logger = logrus.New()
	}

	_ = p.Redis.XGroupCreateMkStream(ctx, p.Stream, p.Group, "0").Err() // ignore BUSYGROUP

	for i := 0; i < p.NumWorkers; i++ {
		consumer := p.ConsumerPrefix + "-" + strconv.Itoa(i+1)
		go p.runConsumer(ctx, consumer)
	}
	p.Logger.WithFields(logrus.Fields{
		"stream":  p.Stream,
		"group":   p.Group,
		"workers": p.NumWorkers,
	}).Info("event workers started")
	return nil
}

func (p *EventWorkerPool) runConsumer(ctx context.Context, consumer string) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := p.Redis.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    p.Group,
			Consumer: consumer,
			Streams:  []string{p.Stream, ">"},
			Count:    10,
			Block:    p.Block,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) || ctx.Err() != nil {
				continue
			}
			p.Logger.WithError(err).WithField("consumer", consumer).Warn("xreadgroup failed")
			time.Sleep(500 * time.Millisecond)
			continue
		}

		for _, stream := range res {
			for _, msg := range stream.Messages {
				if p.handleMsg(ctx, msg) {
					_ = p.Redis.XAck(ctx, p.Stream, p.Group, msg.ID).Err()
				}
			}
		}
	}
}

// handleMsg reports whether the message is done with. Undecodable entries
// are acked and dropped; a failed publish stays pending for redelivery.
func (p *EventWorkerPool) handleMsg(ctx context.Context, msg redis.XMessage) bool {
	log := p.Logger.WithField("redis_id", msg.ID)

	n, err := events.Decode(msg)
	if err != nil {
		log.WithError(err).Warn("dropping undecodable match event")
		return true
	}
	raw, _ := msg.Values["payload"].(string)

	log = log.WithFields(logrus.Fields{
		"company_id": n.CompanyID,
		"type":       n.Type,
	})
	if err := p.Redis.Publish(ctx, events.Channel(n.CompanyID), raw).Err(); err != nil {
		log.WithError(err).Warn("publish to company feed failed")
		return false
	}
	log.Debug("match event forwarded")
	return true
}
