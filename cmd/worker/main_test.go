package main

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"screening-backend/internal/bootstrap"
	"screening-backend/internal/queue"
)

type fakeSQS struct {
	deleted []string
}

func (f *fakeSQS) ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	_ = ctx
	_ = params
	_ = optFns
	return &sqs.ReceiveMessageOutput{}, nil
}

func (f *fakeSQS) DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	_ = ctx
	_ = optFns
	f.deleted = append(f.deleted, aws.ToString(params.ReceiptHandle))
	return &sqs.DeleteMessageOutput{}, nil
}

type fakeProcessor struct {
	err  error
	runs []string
}

func (f *fakeProcessor) Process(ctx context.Context, runID string) error {
	_ = ctx
	f.runs = append(f.runs, runID)
	return f.err
}

func sqsMessage(body string) sqstypes.Message {
	return sqstypes.Message{
		MessageId:     aws.String("msg-1"),
		ReceiptHandle: aws.String("receipt-1"),
		Body:          aws.String(body),
	}
}

func TestHandleMessageDeletesOnSuccess(t *testing.T) {
	processor := &fakeProcessor{}
	app := &bootstrap.App{RunProcessor: processor}
	client := &fakeSQS{}

	body, _ := queue.EncodeMessage(queue.Message{RunID: "run-1", RequestID: "req-1"})
	handleMessage(context.Background(), app, client, "queue-url", sqsMessage(string(body)))

	if len(processor.runs) != 1 || processor.runs[0] != "run-1" {
		t.Fatalf("processed runs = %v", processor.runs)
	}
	if len(client.deleted) != 1 || client.deleted[0] != "receipt-1" {
		t.Fatalf("deleted = %v", client.deleted)
	}
}

func TestHandleMessageKeepsFailedJob(t *testing.T) {
	processor := &fakeProcessor{err: errors.New("boom")}
	app := &bootstrap.App{RunProcessor: processor}
	client := &fakeSQS{}

	body, _ := queue.EncodeMessage(queue.Message{RunID: "run-2", RequestID: "req-2"})
	handleMessage(context.Background(), app, client, "queue-url", sqsMessage(string(body)))

	if len(processor.runs) != 1 {
		t.Fatalf("processed runs = %v", processor.runs)
	}
	if len(client.deleted) != 0 {
		t.Fatalf("failed job should not be deleted, got %v", client.deleted)
	}
}

func TestHandleMessageDeletesMalformedBody(t *testing.T) {
	processor := &fakeProcessor{}
	app := &bootstrap.App{RunProcessor: processor}
	client := &fakeSQS{}

	handleMessage(context.Background(), app, client, "queue-url", sqsMessage("{not json"))

	if len(processor.runs) != 0 {
		t.Fatalf("malformed body should not be processed, got %v", processor.runs)
	}
	if len(client.deleted) != 1 {
		t.Fatalf("malformed body should be deleted, got %v", client.deleted)
	}
}
