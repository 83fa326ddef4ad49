package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/askmynotes/notes-api/internal/adapter"
	"github.com/askmynotes/notes-api/internal/adapter/utils"
	"github.com/askmynotes/notes-api/internal/api"
	"github.com/askmynotes/notes-api/internal/config"
	"github.com/askmynotes/notes-api/internal/domain/commonModels"
)

const noIndexMessage = "No index found for this subject. Upload files first."

// AskHandler godoc
// @Summary      Semantic search over notes
// @Description  Returns the raw top matching chunks for a question without LLM involvement.
// @Tags         Questions
// @Accept       json
// @Produce      json
// @Param        request  body      api.AskRequest  true  "Subject and question"
// @Success      200      {object}  api.AskResponse
// @Failure      400      {object}  api.JobResponse "Invalid subject or empty question"
// @Router       /ask [post]
func AskHandler(w http.ResponseWriter, r *http.Request) {
	requestData, ok := decodeAskRequest(w, r)
	if !ok {
		return
	}

	result := handlerInstance.ragService.Ask(r.Context(), requestData.Subject, requestData.Question)

	response := api.AskResponse{Question: requestData.Question, Results: []api.MatchResult{}}
	if !result.IndexFound {
		response.Message = noIndexMessage
		writeJsonResponse(w, http.StatusOK, response)
		return
	}
	for _, match := range result.Matches {
		response.Results = append(response.Results, api.MatchResult{Citation: match.Citation, Text: match.Text})
	}
	writeJsonResponse(w, http.StatusOK, response)
}

// AskGroundedHandler godoc
// @Summary      Ask with an LLM-grounded answer
// @Description  Retrieves relevant chunks above the score threshold and composes a grounded answer with confidence and evidence.
// @Tags         Questions
// @Accept       json
// @Produce      json
// @Param        request  body      api.AskRequest  true  "Subject and question"
// @Success      200      {object}  api.GroundedResponse
// @Failure      400      {object}  api.JobResponse "Invalid subject or empty question"
// @Router       /ask/grounded [post]
func AskGroundedHandler(w http.ResponseWriter, r *http.Request) {
	requestData, ok := decodeAskRequest(w, r)
	if !ok {
		return
	}

	result := handlerInstance.ragService.AskGrounded(r.Context(), requestData.Subject, requestData.Question)

	response := api.GroundedResponse{
		Answer:     result.Answer,
		Confidence: result.Confidence,
		Evidence:   []api.EvidenceResult{},
		Prompt:     result.Prompt,
	}
	if !result.IndexFound {
		response.Message = noIndexMessage
	}
	for _, ev := range result.Evidence {
		response.Evidence = append(response.Evidence, api.EvidenceResult{Citation: ev.Citation, Snippet: ev.Snippet})
	}
	writeJsonResponse(w, http.StatusOK, response)
}

// TeacherHandler godoc
// @Summary      Conversational teacher
// @Description  Answers conversationally with a follow-up question, maintaining history either client-side or server-side via a chat id.
// @Tags         Questions
// @Accept       json
// @Produce      json
// @Param        request  body      api.TeacherRequest  true  "Subject, question and optional history or chat id"
// @Success      200      {object}  api.TeacherResponse
// @Failure      400      {object}  api.JobResponse "Invalid subject, empty question or unknown chat id"
// @Router       /teacher [post]
func TeacherHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	var requestData api.TeacherRequest
	defer closeBody(r.Body)
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil || requestData.Question == "" {
		logRH.Warn("Bad Teacher Request: ", "error:", err)
		WriteErrorResponse(w, http.StatusBadRequest, "", "Bad Request")
		return
	}
	if !config.IsValidSubject(requestData.Subject) {
		WriteErrorResponse(w, http.StatusBadRequest, "", "Invalid subject provided.")
		return
	}

	chatStore := handlerInstance.service.ChatStore
	chatId := requestData.ChatID
	var history []commonModels.ChatTurn

	switch {
	case chatId != "":
		if !chatStore.ValidateChatId(r.Context(), chatId) {
			WriteErrorResponse(w, http.StatusBadRequest, chatId, "Unknown chat id")
			return
		}
		stored, err := chatStore.GetHistory(r.Context(), chatId, config.StoredHistoryTailTurns)
		if err != nil {
			logRH.Error("Failed to load chat history", "chatId", chatId, "err", err)
		}
		history = stored
	default:
		history = parseHistoryJSON(requestData.History)
		chatId = utils.GetNewUUID()
		if err := chatStore.InitNewChat(r.Context(), chatId); err != nil {
			logRH.Error("Error initiating new chat", "chatId", chatId, "err", err)
		}
	}

	reply := handlerInstance.ragService.TeacherAsk(r.Context(), requestData.Subject, requestData.Question, history)

	if err := chatStore.AppendTurns(r.Context(), chatId,
		commonModels.ChatTurn{Role: "user", Content: requestData.Question},
		commonModels.ChatTurn{Role: "assistant", Content: reply},
	); err != nil {
		logRH.Error("Failed to save chat turns", "chatId", chatId, "err", err)
	}

	writeJsonResponse(w, http.StatusOK, api.TeacherResponse{Reply: reply, ChatId: chatId})
}

// GetStatusHandler godoc
// @Summary      Get ingestion job status
// @Description  Retrieves the current status of a queued ingestion job using its ID.
// @Tags         Job Status
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  api.JobResponse "The current status of the job"
// @Failure      404  {object}  api.JobResponse "Job not found"
// @Router       /status/{id} [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	idString := utils.GetChiURLParam(r, "id")
	result, isFound := validateId(idString, r.Context().Value(config.TRACE_ID_KEY).(string))

	logRH.Debug("Get Status Request:", "URL path", r.URL.Path)
	if !isFound {
		WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
}

func decodeAskRequest(w http.ResponseWriter, r *http.Request) (api.AskRequest, bool) {
	var requestData api.AskRequest
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return requestData, false
	}

	defer closeBody(r.Body)
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil || requestData.Question == "" {
		logRH.Warn("Bad Ask Request: ", "error:", err)
		WriteErrorResponse(w, http.StatusBadRequest, "", "Bad Request")
		return requestData, false
	}
	if !config.IsValidSubject(requestData.Subject) {
		WriteErrorResponse(w, http.StatusBadRequest, "", "Invalid subject")
		return requestData, false
	}
	return requestData, true
}

func closeBody(body io.ReadCloser) {
	if err := body.Close(); err != nil {
		logRH.Error("Couldn't close the request reader :", err)
	}
}

// parseHistoryJSON tolerates a missing or malformed history payload the same
// way a fresh conversation would.
func parseHistoryJSON(raw string) []commonModels.ChatTurn {
	if raw == "" {
		return nil
	}
	var history []commonModels.ChatTurn
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		logRH.Warn("Unreadable history payload, starting fresh", "err", err)
		return nil
	}
	return history
}
