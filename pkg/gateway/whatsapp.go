package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store/sqlstore"
	watypes "go.mau.fi/whatsmeow/types"
	waLog "go.mau.fi/whatsmeow/util/log"
	"google.golang.org/protobuf/proto"
)

// WhatsApp sends messages through a paired whatsmeow session. Pairing (QR
// login) happens out of band; this service only reuses an existing device
// session from the sqlstore container.
type WhatsApp struct {
	logger *log.Logger
	client *whatsmeow.Client
}

// NewWhatsApp opens the device store at storePath and connects the client.
// It fails when no paired device exists yet.
func NewWhatsApp(logger *log.Logger, storePath string) (*WhatsApp, error) {
	dbLog := waLog.Stdout("Database", "ERROR", true)
	container, err := sqlstore.New("sqlite3", fmt.Sprintf("file:%s?_foreign_keys=on", storePath), dbLog)
	if err != nil {
		return nil, fmt.Errorf("failed to open WhatsApp device store: %w", err)
	}

	deviceStore, err := container.GetFirstDevice()
	if err != nil {
		return nil, fmt.Errorf("failed to load WhatsApp device: %w", err)
	}

	clientLog := waLog.Stdout("Client", "ERROR", true)
	client := whatsmeow.NewClient(deviceStore, clientLog)

	if client.Store.ID == nil {
		return nil, fmt.Errorf("no paired WhatsApp device in %s, pair it before starting the server", storePath)
	}

	if err := client.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect WhatsApp client: %w", err)
	}
	logger.Info("WhatsApp client connected, reusing session")

	return &WhatsApp{logger: logger, client: client}, nil
}

// SendText sends a plain text message to a phone number (with or without a
// leading '+').
func (w *WhatsApp) SendText(ctx context.Context, phone string, text string) error {
	jid := watypes.JID{
		User:   strings.TrimPrefix(phone, "+"),
		Server: watypes.DefaultUserServer,
	}

	msg := &waE2E.Message{
		Conversation: proto.String(text),
	}

	resp, err := w.client.SendMessage(ctx, jid, msg)
	if err != nil {
		return fmt.Errorf("failed to send WhatsApp message: %w", err)
	}

	w.logger.Debug("WhatsApp message sent", "recipient", jid.User, "id", resp.ID)
	return nil
}

// Close disconnects the client.
func (w *WhatsApp) Close() {
	if w.client != nil && w.client.IsConnected() {
		w.client.Disconnect()
	}
}
