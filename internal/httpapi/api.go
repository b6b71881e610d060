package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/yuqie6/lifequest/internal/bootstrap"
	"github.com/yuqie6/lifequest/internal/eventbus"
	"github.com/yuqie6/lifequest/internal/schema"
	"github.com/yuqie6/lifequest/internal/stats"
	"github.com/yuqie6/lifequest/internal/store"
)

type apiServer struct {
	core      *bootstrap.Core
	hub       *eventbus.Hub
	timeout   time.Duration
	startTime time.Time
}

func newAPI(core *bootstrap.Core) *apiServer {
	timeout := time.Duration(core.Cfg.Server.RequestTimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &apiServer{
		core:      core,
		hub:       core.Hub,
		timeout:   timeout,
		startTime: time.Now(),
	}
}

// ========== DTOs（与前端契约保持稳定） ==========

type AuthRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionDTO struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

type MutationResultDTO struct {
	OK bool `json:"ok"`
}

type AddExperienceDTO struct {
	Amount int `json:"amount"`
}

type SkillListDTO struct {
	Items   []schema.Skill   `json:"items"`
	Stats   stats.SkillStats `json:"stats"`
	Loading bool             `json:"loading"`
}

type AssetListDTO struct {
	Items   []schema.Asset   `json:"items"`
	Stats   stats.AssetStats `json:"stats"`
	Loading bool             `json:"loading"`
}

type HobbyListDTO struct {
	Items   []schema.Hobby   `json:"items"`
	Stats   stats.HobbyStats `json:"stats"`
	Loading bool             `json:"loading"`
}

type TraitListDTO struct {
	Items   []schema.Trait   `json:"items"`
	Stats   stats.TraitStats `json:"stats"`
	Loading bool             `json:"loading"`
}

type DashboardDTO struct {
	Stats   stats.DashboardStats `json:"stats"`
	Loading bool                 `json:"loading"`
}

type SkillUpdateDTO struct {
	Name        *string `json:"name"`
	Category    *string `json:"category"`
	Level       *int    `json:"level"`
	Experience  *int    `json:"experience"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
}

func (d SkillUpdateDTO) toUpdate() (schema.SkillUpdate, bool) {
	upd := schema.SkillUpdate{
		Name:        d.Name,
		Level:       d.Level,
		Experience:  d.Experience,
		Description: d.Description,
		Icon:        d.Icon,
	}
	if d.Category != nil {
		c := schema.SkillCategory(*d.Category)
		if !c.Valid() {
			return upd, false
		}
		upd.Category = &c
	}
	if d.Level != nil && (*d.Level < 1 || *d.Level > 100) {
		return upd, false
	}
	return upd, true
}

type AssetUpdateDTO struct {
	Name        *string  `json:"name"`
	Type        *string  `json:"type"`
	Amount      *float64 `json:"amount"`
	Currency    *string  `json:"currency"`
	Description *string  `json:"description"`
}

func (d AssetUpdateDTO) toUpdate() (schema.AssetUpdate, bool) {
	upd := schema.AssetUpdate{
		Name:        d.Name,
		Amount:      d.Amount,
		Currency:    d.Currency,
		Description: d.Description,
	}
	if d.Type != nil {
		t := schema.AssetType(*d.Type)
		if !t.Valid() {
			return upd, false
		}
		upd.Type = &t
	}
	if d.Amount != nil && *d.Amount < 0 {
		return upd, false
	}
	return upd, true
}

type HobbyUpdateDTO struct {
	Name        *string   `json:"name"`
	Category    *string   `json:"category"`
	Enthusiasm  *int      `json:"enthusiasm"`
	TimeSpent   *float64  `json:"time_spent"`
	Description *string   `json:"description"`
	Goals       *[]string `json:"goals"`
}

func (d HobbyUpdateDTO) toUpdate() (schema.HobbyUpdate, bool) {
	upd := schema.HobbyUpdate{
		Name:        d.Name,
		Enthusiasm:  d.Enthusiasm,
		TimeSpent:   d.TimeSpent,
		Description: d.Description,
	}
	if d.Category != nil {
		c := schema.HobbyCategory(*d.Category)
		if !c.Valid() {
			return upd, false
		}
		upd.Category = &c
	}
	if d.Enthusiasm != nil && (*d.Enthusiasm < 1 || *d.Enthusiasm > 10) {
		return upd, false
	}
	if d.TimeSpent != nil && *d.TimeSpent < 0 {
		return upd, false
	}
	if d.Goals != nil {
		goals := schema.JSONArray(*d.Goals)
		if len(goals) > schema.MaxHobbyGoals {
			return upd, false
		}
		upd.Goals = &goals
	}
	return upd, true
}

type TraitUpdateDTO struct {
	Name        *string `json:"name"`
	Type        *string `json:"type"`
	Level       *int    `json:"level"`
	Description *string `json:"description"`
}

func (d TraitUpdateDTO) toUpdate() (schema.TraitUpdate, bool) {
	upd := schema.TraitUpdate{
		Name:        d.Name,
		Level:       d.Level,
		Description: d.Description,
	}
	if d.Type != nil {
		t := schema.TraitType(*d.Type)
		if !t.Valid() {
			return upd, false
		}
		upd.Type = &t
	}
	if d.Level != nil && (*d.Level < 1 || *d.Level > 10) {
		return upd, false
	}
	return upd, true
}

type ProfileUpdateDTO struct {
	Name       *string  `json:"name"`
	Age        *int     `json:"age"`
	Height     *float64 `json:"height"`
	Weight     *float64 `json:"weight"`
	Bio        *string  `json:"bio"`
	Level      *int     `json:"level"`
	Experience *int     `json:"experience"`
}

func (d ProfileUpdateDTO) toUpdate() schema.ProfileUpdate {
	return schema.ProfileUpdate{
		Name:       d.Name,
		Age:        d.Age,
		Height:     d.Height,
		Weight:     d.Weight,
		Bio:        d.Bio,
		Level:      d.Level,
		Experience: d.Experience,
	}
}

// ========== routes ==========

func (a *apiServer) registerJSONRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/signup", a.signUp)
	mux.HandleFunc("POST /api/auth/signin", a.signIn)
	mux.HandleFunc("POST /api/auth/signout", a.requireAuth(a.signOut))

	mux.HandleFunc("GET /api/profile", a.requireAuth(a.getProfile))
	mux.HandleFunc("PUT /api/profile", a.requireAuth(a.updateProfile))
	mux.HandleFunc("POST /api/profile/experience", a.requireAuth(a.grantProfileExperience))

	mux.HandleFunc("GET /api/skills", a.requireAuth(a.listSkills))
	mux.HandleFunc("POST /api/skills", a.requireAuth(a.createSkill))
	mux.HandleFunc("PUT /api/skills/{id}", a.requireAuth(a.updateSkill))
	mux.HandleFunc("DELETE /api/skills/{id}", a.requireAuth(a.deleteSkill))
	mux.HandleFunc("POST /api/skills/{id}/experience", a.requireAuth(a.addSkillExperience))

	mux.HandleFunc("GET /api/assets", a.requireAuth(a.listAssets))
	mux.HandleFunc("POST /api/assets", a.requireAuth(a.createAsset))
	mux.HandleFunc("PUT /api/assets/{id}", a.requireAuth(a.updateAsset))
	mux.HandleFunc("DELETE /api/assets/{id}", a.requireAuth(a.deleteAsset))

	mux.HandleFunc("GET /api/hobbies", a.requireAuth(a.listHobbies))
	mux.HandleFunc("POST /api/hobbies", a.requireAuth(a.createHobby))
	mux.HandleFunc("PUT /api/hobbies/{id}", a.requireAuth(a.updateHobby))
	mux.HandleFunc("DELETE /api/hobbies/{id}", a.requireAuth(a.deleteHobby))

	mux.HandleFunc("GET /api/traits", a.requireAuth(a.listTraits))
	mux.HandleFunc("POST /api/traits", a.requireAuth(a.createTrait))
	mux.HandleFunc("PUT /api/traits/{id}", a.requireAuth(a.updateTrait))
	mux.HandleFunc("DELETE /api/traits/{id}", a.requireAuth(a.deleteTrait))

	mux.HandleFunc("GET /api/dashboard", a.requireAuth(a.getDashboard))
}

// requireAuth 校验 Bearer 令牌并在必要时恢复会话
func (a *apiServer) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "未登录")
			return
		}
		if a.core.Auth.Token() != token {
			if err := a.core.Auth.Resume(r.Context(), token); err != nil {
				writeError(w, http.StatusUnauthorized, "会话无效")
				return
			}
		}
		next(w, r)
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}

func (a *apiServer) reqCtx(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), a.timeout)
}

// ========== auth handlers ==========

func (a *apiServer) signUp(w http.ResponseWriter, r *http.Request) {
	var req AuthRequestDTO
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "请求格式错误")
		return
	}

	ctx, cancel := a.reqCtx(r)
	defer cancel()

	if err := a.core.Auth.SignUp(ctx, req.Email, req.Password); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	a.writeSession(w)
}

func (a *apiServer) signIn(w http.ResponseWriter, r *http.Request) {
	var req AuthRequestDTO
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "请求格式错误")
		return
	}

	ctx, cancel := a.reqCtx(r)
	defer cancel()

	if err := a.core.Auth.SignIn(ctx, req.Email, req.Password); err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	a.writeSession(w)
}

func (a *apiServer) signOut(w http.ResponseWriter, r *http.Request) {
	a.core.Auth.SignOut()
	writeJSON(w, http.StatusOK, &MutationResultDTO{OK: true})
}

func (a *apiServer) writeSession(w http.ResponseWriter) {
	sess, ok := a.core.Auth.CurrentSession()
	if !ok {
		writeError(w, http.StatusUnauthorized, "用户未登录")
		return
	}
	writeJSON(w, http.StatusOK, &SessionDTO{
		UserID: sess.UserID,
		Email:  sess.Email,
		Token:  sess.Token,
	})
}

// ========== profile handlers ==========

func (a *apiServer) getProfile(w http.ResponseWriter, r *http.Request) {
	profile := a.core.Auth.Profile()
	if profile == nil {
		writeError(w, http.StatusNotFound, "档案不存在")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (a *apiServer) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileUpdateDTO
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "请求格式错误")
		return
	}

	ctx, cancel := a.reqCtx(r)
	defer cancel()

	if err := a.core.Auth.UpdateProfile(ctx, req.toUpdate()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, a.core.Auth.Profile())
}

func (a *apiServer) grantProfileExperience(w http.ResponseWriter, r *http.Request) {
	var req AddExperienceDTO
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "请求格式错误")
		return
	}

	ctx, cancel := a.reqCtx(r)
	defer cancel()

	if err := a.core.Auth.GrantExperience(ctx, req.Amount); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, a.core.Auth.Profile())
}

// ========== skill handlers ==========

func (a *apiServer) listSkills(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := a.reqCtx(r)
	defer cancel()

	s := a.core.Stores.Skills
	s.Fetch(ctx)
	writeJSON(w, http.StatusOK, &SkillListDTO{
		Items:   s.Snapshot(),
		Stats:   s.Stats(),
		Loading: s.Loading(),
	})
}

func (a *apiServer) createSkill(w http.ResponseWriter, r *http.Request) {
	var in store.CreateSkillInput
	if err := readJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "请求格式错误")
		return
	}

	ctx, cancel := a.reqCtx(r)
	defer cancel()

	writeJSON(w, http.StatusOK, &MutationResultDTO{OK: a.core.Stores.Skills.Create(ctx, in)})
}

func (a *apiServer) updateSkill(w http.ResponseWriter, r *http.Request) {
	var req SkillUpdateDTO
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "请求格式错误")
		return
	}
	upd, ok := req.toUpdate()
	if !ok {
		writeError(w, http.StatusBadRequest, "字段取值不合法")
		return
	}

	ctx, cancel := a.reqCtx(r)
	defer cancel()

	writeJSON(w, http.StatusOK, &MutationResultDTO{OK: a.core.Stores.Skills.Update(ctx, r.PathValue("id"), upd)})
}

func (a *apiServer) deleteSkill(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := a.reqCtx(r)
	defer cancel()

	writeJSON(w, http.StatusOK, &MutationResultDTO{OK: a.core.Stores.Skills.Delete(ctx, r.PathValue("id"))})
}

func (a *apiServer) addSkillExperience(w http.ResponseWriter, r *http.Request) {
	var req AddExperienceDTO
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "请求格式错误")
		return
	}

	ctx, cancel := a.reqCtx(r)
	defer cancel()

	writeJSON(w, http.StatusOK, &MutationResultDTO{OK: a.core.Stores.Skills.AddExperience(ctx, r.PathValue("id"), req.Amount)})
}

// ========== asset handlers ==========

func (a *apiServer) listAssets(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := a.reqCtx(r)
	defer cancel()

	s := a.core.Stores.Assets
	s.Fetch(ctx)
	writeJSON(w, http.StatusOK, &AssetListDTO{
		Items:   s.Snapshot(),
		Stats:   s.Stats(),
		Loading: s.Loading(),
	})
}

func (a *apiServer) createAsset(w http.ResponseWriter, r *http.Request) {
	var in store.CreateAssetInput
	if err := readJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "请求格式错误")
		return
	}

	ctx, cancel := a.reqCtx(r)
	defer cancel()

	writeJSON(w, http.StatusOK, &MutationResultDTO{OK: a.core.Stores.Assets.Create(ctx, in)})
}

func (a *apiServer) updateAsset(w http.ResponseWriter, r *http.Request) {
	var req AssetUpdateDTO
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "请求格式错误")
		return
	}
	upd, ok := req.toUpdate()
	if !ok {
		writeError(w, http.StatusBadRequest, "字段取值不合法")
		return
	}

	ctx, cancel := a.reqCtx(r)
	defer cancel()

	writeJSON(w, http.StatusOK, &MutationResultDTO{OK: a.core.Stores.Assets.Update(ctx, r.PathValue("id"), upd)})
}

func (a *apiServer) deleteAsset(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := a.reqCtx(r)
	defer cancel()

	writeJSON(w, http.StatusOK, &MutationResultDTO{OK: a.core.Stores.Assets.Delete(ctx, r.PathValue("id"))})
}

// ========== hobby handlers ==========

func (a *apiServer) listHobbies(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := a.reqCtx(r)
	defer cancel()

	s := a.core.Stores.Hobbies
	s.Fetch(ctx)
	writeJSON(w, http.StatusOK, &HobbyListDTO{
		Items:   s.Snapshot(),
		Stats:   s.Stats(),
		Loading: s.Loading(),
	})
}

func (a *apiServer) createHobby(w http.ResponseWriter, r *http.Request) {
	var in store.CreateHobbyInput
	if err := readJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "请求格式错误")
		return
	}

	ctx, cancel := a.reqCtx(r)
	defer cancel()

	writeJSON(w, http.StatusOK, &MutationResultDTO{OK: a.core.Stores.Hobbies.Create(ctx, in)})
}

func (a *apiServer) updateHobby(w http.ResponseWriter, r *http.Request) {
	var req HobbyUpdateDTO
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "请求格式错误")
		return
	}
	upd, ok := req.toUpdate()
	if !ok {
		writeError(w, http.StatusBadRequest, "字段取值不合法")
		return
	}

	ctx, cancel := a.reqCtx(r)
	defer cancel()

	writeJSON(w, http.StatusOK, &MutationResultDTO{OK: a.core.Stores.Hobbies.Update(ctx, r.PathValue("id"), upd)})
}

func (a *apiServer) deleteHobby(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := a.reqCtx(r)
	defer cancel()

	writeJSON(w, http.StatusOK, &MutationResultDTO{OK: a.core.Stores.Hobbies.Delete(ctx, r.PathValue("id"))})
}

// ========== trait handlers ==========

func (a *apiServer) listTraits(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := a.reqCtx(r)
	defer cancel()

	s := a.core.Stores.Traits
	s.Fetch(ctx)
	writeJSON(w, http.StatusOK, &TraitListDTO{
		Items:   s.Snapshot(),
		Stats:   s.Stats(),
		Loading: s.Loading(),
	})
}

func (a *apiServer) createTrait(w http.ResponseWriter, r *http.Request) {
	var in store.CreateTraitInput
	if err := readJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "请求格式错误")
		return
	}

	ctx, cancel := a.reqCtx(r)
	defer cancel()

	writeJSON(w, http.StatusOK, &MutationResultDTO{OK: a.core.Stores.Traits.Create(ctx, in)})
}

func (a *apiServer) updateTrait(w http.ResponseWriter, r *http.Request) {
	var req TraitUpdateDTO
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "请求格式错误")
		return
	}
	upd, ok := req.toUpdate()
	if !ok {
		writeError(w, http.StatusBadRequest, "字段取值不合法")
		return
	}

	ctx, cancel := a.reqCtx(r)
	defer cancel()

	writeJSON(w, http.StatusOK, &MutationResultDTO{OK: a.core.Stores.Traits.Update(ctx, r.PathValue("id"), upd)})
}

func (a *apiServer) deleteTrait(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := a.reqCtx(r)
	defer cancel()

	writeJSON(w, http.StatusOK, &MutationResultDTO{OK: a.core.Stores.Traits.Delete(ctx, r.PathValue("id"))})
}

// ========== dashboard ==========

func (a *apiServer) getDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := a.reqCtx(r)
	defer cancel()

	s := a.core.Stores.Dashboard
	s.Fetch(ctx)
	writeJSON(w, http.StatusOK, &DashboardDTO{
		Stats:   s.Stats(),
		Loading: s.Loading(),
	})
}
