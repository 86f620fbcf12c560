package signal

func (ctl *Controller) handlePing(c *WsConn) {
	if frame, ok := encode("pong", nil); ok {
		_ = c.TrySend(frame)
	}
}
