package devserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tanimarket/internal/models"
)

func (s *Server) handleConversation(c *gin.Context) {
	userA := c.Param("userA")
	userB := c.Param("userB")

	// Only a participant may read the thread.
	me := currentUser(c)
	if me.ID != userA && me.ID != userB {
		c.JSON(http.StatusForbidden, gin.H{"message": "bukan percakapan anda"})
		return
	}

	messages := s.state.conversation(userA, userB)
	if messages == nil {
		messages = []models.Message{}
	}
	c.JSON(http.StatusOK, messages)
}

func (s *Server) handleSendMessage(c *gin.Context) {
	var req struct {
		SenderID   string `json:"sender_id"`
		ReceiverID string `json:"receiver_id"`
		Body       string `json:"body"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "permintaan tidak valid"})
		return
	}

	me := currentUser(c)
	if req.SenderID != me.ID {
		c.JSON(http.StatusForbidden, gin.H{"message": "pengirim tidak sesuai"})
		return
	}

	if strings.TrimSpace(req.Body) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "pesan kosong"})
		return
	}

	if _, ok := s.state.userByID(req.ReceiverID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": errUserNotFound.Error()})
		return
	}

	message := models.Message{
		ID:         uuid.NewString(),
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		Body:       req.Body,
		CreatedAt:  time.Now(),
	}
	s.state.addMessage(message)

	c.JSON(http.StatusCreated, message)
}

func (s *Server) handleMarkRead(c *gin.Context) {
	var req struct {
		MessageIDs []string `json:"message_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "permintaan tidak valid"})
		return
	}

	s.state.markRead(req.MessageIDs)
	c.Status(http.StatusNoContent)
}
