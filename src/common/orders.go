package common

import (
	"context"
	"fmt"
	"log"
	"receh48/src/booking"
	"receh48/src/config"
	"receh48/src/lib"
	"receh48/src/lib/mailer"
	"receh48/src/models"
	"receh48/src/utils"
	"strings"
)

// OrderSummary renders the order for email. The credential is never included.
func OrderSummary(order *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ID Pesanan: %s\n", order.ID.String())
	fmt.Fprintf(&b, "Nama: %s\n", order.CustomerName)
	fmt.Fprintf(&b, "Layanan: %s\n", order.OrderType.Label())
	fmt.Fprintf(&b, "Status: %s\n", order.Status)
	fmt.Fprintf(&b, "Total: %s\n\n", utils.FormatRupiah(order.TotalFee))
	lines, err := booking.ParseNote(order.Note)
	if err != nil {
		b.WriteString(order.Note)
		return b.String()
	}
	for _, l := range lines {
		fmt.Fprintf(&b, "%d. %s - %s (%s)\n", l.Index, l.MemberName, l.Date, l.Session)
		if l.Backup != nil {
			fmt.Fprintf(&b, "   Cadangan: %s - %s (%s)\n", l.Backup.MemberName, l.Backup.Date, l.Backup.Session)
		}
	}
	return b.String()
}

func SendOrderConfirmation(ctx context.Context, order *models.Order) {
	body := fmt.Sprintf("Halo %s,\n\nPesanan kamu sudah kami terima dan akan segera diproses.\n\n%s", order.CustomerName, OrderSummary(order))
	err := mailer.NewMailerMessage(&lib.SendMailInput{
		To:      []string{order.ContactEmail},
		Subject: fmt.Sprintf("Pesanan %s diterima", order.OrderType.Label()),
		Body:    body,
	})
	if err != nil {
		log.Printf("[MAILER] Failed to queue confirmation for order %s: %s\n", order.ID.String(), err.Error())
	}
}

// NotifyAdminNewOrder mails ADMIN_EMAIL when it is configured.
func NotifyAdminNewOrder(ctx context.Context, order *models.Order) {
	if config.ADMIN_EMAIL == "" {
		return
	}
	err := mailer.NewMailerMessage(&lib.SendMailInput{
		To:      []string{config.ADMIN_EMAIL},
		Subject: fmt.Sprintf("Pesanan baru: %s", order.CustomerName),
		Body:    OrderSummary(order),
	})
	if err != nil {
		log.Printf("[MAILER] Failed to queue admin alert for order %s: %s\n", order.ID.String(), err.Error())
	}
}
