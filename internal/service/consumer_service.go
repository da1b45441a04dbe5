package service

import (
	"context"
	"encoding/json"
	"log"

	"ai-docchat-be/internal/dto"
	"ai-docchat-be/internal/repository/specification"
	"ai-docchat-be/internal/repository/unitofwork"
	"ai-docchat-be/pkg/vectorindex"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	uowFactory   unitofwork.RepositoryFactory
	indexManager *vectorindex.Manager
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	indexManager *vectorindex.Manager,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		uowFactory:   uowFactory,
		indexManager: indexManager,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.IngestDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal ingest message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Rebuilding index for session %s", payload.ChatSessionId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: payload.ChatSessionId})
	if err != nil {
		log.Printf("[ERROR] Failed to load session %s: %v", payload.ChatSessionId, err)
		msg.Nack()
		return
	}
	if session == nil {
		log.Printf("[WARN] Session %s gone, skipping ingest", payload.ChatSessionId)
		msg.Ack()
		return
	}

	chunks, err := cs.indexManager.Ingest(ctx, session.Id, session.ChunkSize, session.ChunkOverlap)
	if err != nil {
		log.Printf("[ERROR] Failed to rebuild index for session %s: %v", session.Id, err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Session %s indexed: %d chunks", session.Id, chunks)
	msg.Ack()
}
