package main

import (
	"context"

	"go.uber.org/zap"
)

type Consumer interface {
	Consume(ctx context.Context, qids ...string) error
}

// boltArchiveConsumer drains order events from the queues and writes
// each one to the boltdb audit archive.
type boltArchiveConsumer struct {
	logger  *zap.Logger
	queue   Queuer
	archive OrderArchiver
}

func NewBoltArchiveConsumer(logger *zap.Logger, q Queuer, archive OrderArchiver) Consumer {
	return &boltArchiveConsumer{logger, q, archive}
}

func (bc *boltArchiveConsumer) Consume(ctx context.Context, qids ...string) error {
	var event OrderEvent
	var err error
	var qid string
	for {
		qid, event, err = bc.queue.Pop(ctx, qids...)
		if err != nil && ctx.Err() != nil {
			bc.logger.Info("consumer: queue pop call: context is done: exit", zap.String("reason", ctx.Err().Error()))
			return nil
		}

		if err != nil {
			bc.logger.Error("consumer: error on queue pop call", zap.Error(err))
			continue
		}

		switch qid {
		case OrderCreatedQueue, OrderCancelledQueue, OrderStatusQueue:
			if err = bc.archive.Archive(ctx, event); err != nil {
				bc.logger.Error("consumer: failed to archive order event", zap.Any("event", event), zap.Error(err))
			}
		default:
			bc.logger.Warn("consumer: received event on unknow queue id", zap.String("qid", qid), zap.Any("event", event))
		}
	}
}
