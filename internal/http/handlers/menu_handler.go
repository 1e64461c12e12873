package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/rit1708/Digital-menu/internal/http/handlers/common"
	"github.com/rit1708/Digital-menu/internal/service"
	"github.com/rit1708/Digital-menu/internal/ws"
)

// MenuHandler отдаёт публичное меню ресторана и live-канал его обновлений.
// Аутентификация не требуется: ссылку / QR-код получает любой посетитель.
type MenuHandler struct {
	menu     *service.MenuService
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

// NewMenuHandler создаёт хэндлер. hub может быть nil, тогда Live недоступен.
func NewMenuHandler(menu *service.MenuService, hub *ws.Hub) *MenuHandler {
	return &MenuHandler{
		menu: menu,
		hub:  hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Get обрабатывает GET /menu/:id.
func (h *MenuHandler) Get(c *gin.Context) {
	restaurantID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	menu, err := h.menu.Get(c.Request.Context(), restaurantID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, menu)
}

// Live обслуживает GET /menu/:id/live — WebSocket с событиями menu.updated.
func (h *MenuHandler) Live(c *gin.Context) {
	restaurantID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	// Ресторан должен существовать, иначе комната зря живёт в памяти.
	if _, err := h.menu.Get(c.Request.Context(), restaurantID); err != nil {
		respondServiceError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	client := ws.NewClient(conn, h.hub, restaurantID)
	h.hub.Register(client)

	client.Run(c.Request.Context())
}
