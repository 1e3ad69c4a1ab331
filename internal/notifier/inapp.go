package notifier

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/fitlog/internal/constants"
	"github.com/julianstephens/fitlog/internal/models"
)

var bannerStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("205")).
	Foreground(lipgloss.Color("230")).
	Padding(0, 2)

var bannerTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))

// RenderBanner renders a delivery as an in-app banner.
func RenderBanner(d models.Delivery) string {
	body := fmt.Sprintf("%s\n%s  (%s)", bannerTitleStyle.Render(constants.NotificationTitle), d.Message, d.Slot)
	return bannerStyle.Render(body)
}

// Banner prints reminders as banners to a writer.
type Banner struct {
	mu  sync.Mutex
	out io.Writer
}

func NewBanner(out io.Writer) *Banner {
	return &Banner{out: out}
}

func (b *Banner) Name() string {
	return string(models.ChannelInApp)
}

func (b *Banner) Deliver(_ context.Context, d models.Delivery) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := fmt.Fprintln(b.out, RenderBanner(d))
	return err
}

// Queue hands reminders to an interactive view that renders them itself.
type Queue struct {
	ch chan models.Delivery
}

func NewQueue(size int) *Queue {
	if size < 1 {
		size = 1
	}
	return &Queue{ch: make(chan models.Delivery, size)}
}

func (q *Queue) Name() string {
	return string(models.ChannelInApp)
}

// Deliver enqueues d. It fails when the queue is full and ctx is done.
func (q *Queue) Deliver(ctx context.Context, d models.Delivery) error {
	select {
	case q.ch <- d:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pending drains every queued delivery without blocking.
func (q *Queue) Pending() []models.Delivery {
	var out []models.Delivery
	for {
		select {
		case d := <-q.ch:
			out = append(out, d)
		default:
			return out
		}
	}
}
