package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"

	"github.com/gofiber/fiber/v3"

	"freelance-trends/internal/agent"
	"freelance-trends/internal/delivery/http/dto"
)

// A2AHandler exposes the agent over a JSON-RPC 2.0 endpoint. Transport
// malformations are answered at this layer and never reach the task
// state machine.
type A2AHandler struct {
	agent  *agent.Agent
	logger *log.Logger
}

func NewA2AHandler(a *agent.Agent, logger *log.Logger) *A2AHandler {
	return &A2AHandler{agent: a, logger: logger}
}

func (h *A2AHandler) HandleRPC(c fiber.Ctx) error {
	var req dto.JSONRPCRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return rpcError(c, nil, dto.CodeInvalidRequest, "Invalid Request")
	}
	if req.JSONRPC != "2.0" || isNullID(req.ID) {
		return rpcError(c, req.ID, dto.CodeInvalidRequest, "Invalid Request")
	}

	switch req.Method {
	case "message/send":
		return h.handleSendMessage(c, req)
	case "execute":
		return h.handleExecute(c, req)
	default:
		return rpcError(c, req.ID, dto.CodeMethodNotFound, "Method not found")
	}
}

func (h *A2AHandler) handleSendMessage(c fiber.Ctx, req dto.JSONRPCRequest) error {
	var params dto.SendMessageParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return rpcError(c, req.ID, dto.CodeInvalidParams, "Invalid params")
	}
	if err := params.Message.Validate(); err != nil {
		return rpcError(c, req.ID, dto.CodeInvalidParams, "Invalid params")
	}

	return h.run(c, req.ID, []agent.Message{params.Message}, "", params.Message.TaskID)
}

func (h *A2AHandler) handleExecute(c fiber.Ctx, req dto.JSONRPCRequest) error {
	var params dto.ExecuteParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return rpcError(c, req.ID, dto.CodeInvalidParams, "Invalid params")
	}
	if len(params.Messages) == 0 {
		return rpcError(c, req.ID, dto.CodeInvalidParams, "Invalid params")
	}
	for _, m := range params.Messages {
		if err := m.Validate(); err != nil {
			return rpcError(c, req.ID, dto.CodeInvalidParams, "Invalid params")
		}
	}

	return h.run(c, req.ID, params.Messages, params.ContextID, params.TaskID)
}

func (h *A2AHandler) run(c fiber.Ctx, id json.RawMessage, messages []agent.Message, contextID, taskID string) error {
	task, err := h.agent.ProcessMessages(c.Context(), messages, contextID, taskID)
	if err != nil {
		if errors.Is(err, agent.ErrNoMessage) {
			return rpcError(c, id, dto.CodeInvalidParams, "Invalid params")
		}
		if h.logger != nil {
			h.logger.Printf("[A2A] Processing error | err=%v", err)
		}
		return rpcError(c, id, dto.CodeInternalError, "Internal error")
	}

	history, _ := h.agent.History(task.ContextID)
	return c.JSON(dto.JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  dto.NewTaskResponse(task, history),
	})
}

func rpcError(c fiber.Ctx, id json.RawMessage, code int, message string) error {
	return c.JSON(dto.JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &dto.JSONRPCError{Code: code, Message: message},
	})
}

func isNullID(id json.RawMessage) bool {
	return len(id) == 0 || bytes.Equal(bytes.TrimSpace(id), []byte("null"))
}
