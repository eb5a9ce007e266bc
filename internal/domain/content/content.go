// internal/domain/content/content.go
package content

// DefaultCaption is sent with the first image, or alone when there are no images.
const DefaultCaption = `
🚨 <b>¡OFERTA ESPECIAL!</b> 🚨

¡No te pierdas esta increíble oportunidad!
`

// DefaultDetailed is always sent as the second message of a delivery.
const DefaultDetailed = `
✅ Beneficio 1
✅ Beneficio 2
✅ Beneficio 3

👉 <a href='https://t.me/tubot'>¡Únete ahora!</a>
`

// Message is the promotional content of one run. Both fields may carry HTML markup.
type Message struct {
	Caption  string
	Detailed string
}

// Default returns the built-in promotional texts.
func Default() Message {
	return Message{Caption: DefaultCaption, Detailed: DefaultDetailed}
}
