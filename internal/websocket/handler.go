package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs attaches an authenticated connection to the hub and blocks until
// the peer goes away.
func ServeWs(hub *Hub, c *websocket.Conn, employeeID string) {
	client := &Client{Hub: hub, Conn: c, EmployeeID: employeeID, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	go client.writePump()
	client.readPump()
}
