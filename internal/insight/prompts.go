package insight

import (
	"fmt"
	"strings"
	"time"

	"taskboard.app/server/internal/model"
)

const taskSystemPrompt = `You are an assistant that analyzes a single task in a task tracker and returns ONLY valid minified JSON that matches this schema:
{
  "summary": string,
  "riskLevel": "low"|"medium"|"high",
  "alerts": [ { "code": string, "severity": "low"|"medium"|"high", "message": string } ],
  "nextActions": [ string ]
}

REQUISITO CRÍTICO DE RESUMEN: El campo "summary" debe ser un resumen COMPRENSIVO y DETALLADO que incluya:
1. Estado actual de la tarea y progreso general
2. Resumen cronológico de actividades importantes desde los comentarios MÁS RECIENTES hacia atrás
3. Evolución temporal: qué problemas había, qué se hizo para resolverlos, cuál es la situación actual
4. Contexto sobre el responsable y fechas si son relevantes
5. El resumen debe ser informativo, no una frase corta

ANÁLISIS CRONOLÓGICO CRÍTICO: Los comentarios están ordenados del MÁS RECIENTE al más antiguo.
- Analiza la EVOLUCIÓN temporal: ¿Los problemas fueron resueltos en comentarios más recientes?
- Si un comentario reciente dice "funciona", "resuelto", "deployar a tiempo", "listo", entonces los problemas anteriores YA NO SON ACTUALES
- Las alertas y próximos pasos deben reflejar ÚNICAMENTE el estado ACTUAL basado en los últimos comentarios
- Si hay resolución reciente, NO sugieras acciones para problemas ya resueltos (como solicitar extensiones)
- Los "nextActions" deben ser coherentes con el último estado reportado, no con problemas antiguos

REGLAS ESTRICTAS:
1. Comentarios más recientes tienen PRIORIDAD ABSOLUTA sobre comentarios antiguos
2. Si el último comentario es positivo, el riesgo debe ser bajo/medio, no alto
3. NO sugieras solicitar extensión si comentarios recientes indican que se va a tiempo
4. Las alertas deben ser del PRESENTE, no del pasado ya resuelto
5. El RESUMEN debe ser de al menos 2-3 oraciones, explicando el contexto cronológico de los comentarios

Rules: Respond in Spanish. Output strictly JSON with no markdown, no code fences.`

const userSystemPrompt = `You are an assistant that analyzes a user's workload and returns ONLY valid minified JSON:
{
  "summary": string,
  "overallStatus": "on_track"|"at_risk"|"off_track",
  "riskLevel": "low"|"medium"|"high",
  "alerts": [ { "code": string, "severity": "low"|"medium"|"high", "message": string } ],
  "taskSummaries": [ { "taskId": number, "title": string, "summary": string, "status": string, "riskLevel": string, "alerts": [ { "code": string, "severity": string, "message": string } ], "nextActions": [ string ] } ]
}
Rules: Respond in Spanish, strict JSON only, no markdown.`

func buildTaskUserPrompt(task *model.Task, maxComments int) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Tarea: #%d - %s\n", task.ID, task.Title)
	fmt.Fprintf(&sb, "Estado: %s\n", task.Status)
	if task.DueDate != nil {
		fmt.Fprintf(&sb, "Fecha compromiso (UTC): %s\n", task.DueDate.Format(time.RFC3339))
	}
	if task.Description != nil && strings.TrimSpace(*task.Description) != "" {
		sb.WriteString("Descripción:\n")
		sb.WriteString(*task.Description)
		sb.WriteString("\n")
	}
	if task.ResponsibleUser != nil {
		fmt.Fprintf(&sb, "Responsable: %s (Id %d)\n", task.ResponsibleUser.Name, task.ResponsibleUser.ID)
	}

	sb.WriteString("Comentarios recientes (ordenados del más reciente al más antiguo):\n")
	comments := headComments(task.Comments, maxComments)
	for _, c := range comments {
		body := strings.ReplaceAll(c.Body, "\n", " ")
		fmt.Fprintf(&sb, "- [%s] %s: %s\n", c.CreatedAt.Format(time.RFC3339), c.CreatedBy, body)
	}

	sb.WriteString("\nINSTRUCCIONES PARA EL RESUMEN:\n")
	sb.WriteString("- Genera un resumen comprensivo de al menos 2-3 oraciones\n")
	sb.WriteString("- Incluye contexto cronológico: qué pasó, qué problemas había, cómo se resolvieron\n")
	sb.WriteString("- Enfócate en el estado ACTUAL basado en los comentarios más recientes\n")
	sb.WriteString("- Si hubo problemas que luego se resolvieron, menciona esa evolución\n")
	sb.WriteString("- Incluye información sobre el progreso y próximos pasos si están claros\n")
	sb.WriteString("\nGenera el JSON del análisis con un resumen detallado:\n")

	return sb.String()
}

func buildUserUserPrompt(user *model.User, tasks []model.Task) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Usuario: %s (Id %d)\n", user.Name, user.ID)
	sb.WriteString("Tareas consideradas:\n")
	for i := range tasks {
		t := &tasks[i]
		due := "null"
		if t.DueDate != nil {
			due = t.DueDate.Format(time.RFC3339)
		}
		fmt.Fprintf(&sb, "- #%d | %s | Estado: %s | Due: %s\n", t.ID, t.Title, t.Status, due)
	}
	sb.WriteString("Resume riesgos y próximos pasos clave.\n")

	return sb.String()
}
