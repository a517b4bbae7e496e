package dto

import (
	"encoding/json"

	"freelance-trends/internal/agent"
)

// JSON-RPC 2.0 envelope for the agent endpoint.

const (
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

type JSONRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type JSONRPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *JSONRPCError   `json:"error,omitempty"`
}

type SendMessageParams struct {
	Message agent.Message `json:"message"`
}

type ExecuteParams struct {
	ContextID string          `json:"contextId"`
	TaskID    string          `json:"taskId"`
	Messages  []agent.Message `json:"messages"`
}

type TaskStatus struct {
	State   string         `json:"state"`
	Message *agent.Message `json:"message,omitempty"`
}

type TaskResponse struct {
	ID        string           `json:"id"`
	ContextID string           `json:"contextId"`
	Status    TaskStatus       `json:"status"`
	Artifacts []agent.Artifact `json:"artifacts"`
	History   []agent.Message  `json:"history"`
	Kind      string           `json:"kind"`
}

func NewTaskResponse(t *agent.Task, history []agent.Message) TaskResponse {
	artifacts := t.Artifacts
	if artifacts == nil {
		artifacts = []agent.Artifact{}
	}
	if history == nil {
		history = []agent.Message{}
	}
	return TaskResponse{
		ID:        t.ID,
		ContextID: t.ContextID,
		Status:    TaskStatus{State: string(t.State), Message: t.Result},
		Artifacts: artifacts,
		History:   history,
		Kind:      "task",
	}
}
