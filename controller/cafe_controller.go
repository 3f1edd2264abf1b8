package controller

import (
	"cafewifi/model"
	"cafewifi/repository"
	"cafewifi/utils"
	"errors"
	"fmt"
	"github.com/gin-gonic/gin"
	"log"
	"net/http"
	"strconv"
	"strings"
)

const (
	noCafesMessage      = "Sorry, no cafes in the database."
	noLocationMessage   = "Sorry, we don't have a cafe in that location."
	noNameMatchMessage  = "Sorry, we don't have a cafe with that name."
	missingFieldsNotice = "Please fill in the name, map URL, image URL, location and seats."
)

// CafeController serves the cafe pages and the JSON API.
type CafeController struct {
	Cafes repository.CafeRepositoryI
}

func NewCafeController(cafes repository.CafeRepositoryI) *CafeController {
	return &CafeController{Cafes: cafes}
}

// cafeForm is the add/edit form. Checkboxes are present (any value) when ticked.
type cafeForm struct {
	Name              string `form:"name" binding:"required,max=250"`
	MapURL            string `form:"map_url" binding:"required,url,max=500"`
	ImgURL            string `form:"img_url" binding:"required,url,max=500"`
	Location          string `form:"location" binding:"required,max=250"`
	Seats             string `form:"seats" binding:"required,max=250"`
	Toilet            string `form:"toilet"`
	Wifi              string `form:"wifi"`
	Sockets           string `form:"sockets"`
	Calls             string `form:"calls"`
	CoffeePrice       string `form:"coffee_price" binding:"max=250"`
	CoffeePriceNumber string `form:"coffee_price_number"`
	CurrencySymbol    string `form:"currency_symbol"`
}

// normalize trims the text fields and reports whether every required field
// is still set.
func (f *cafeForm) normalize() bool {
	for _, v := range []*string{
		&f.Name, &f.MapURL, &f.ImgURL, &f.Location, &f.Seats,
		&f.CoffeePrice, &f.CoffeePriceNumber, &f.CurrencySymbol,
	} {
		*v = strings.TrimSpace(*v)
	}
	return f.Name != "" && f.MapURL != "" && f.ImgURL != "" && f.Location != "" && f.Seats != ""
}

// apply copies a normalized form onto cafe.
func (f *cafeForm) apply(cafe *model.Cafe) {
	cafe.Name = f.Name
	cafe.MapURL = f.MapURL
	cafe.ImgURL = f.ImgURL
	cafe.Location = f.Location
	cafe.Seats = f.Seats
	cafe.HasToilet = checked(f.Toilet)
	cafe.HasWifi = checked(f.Wifi)
	cafe.HasSockets = checked(f.Sockets)
	cafe.CanTakeCalls = checked(f.Calls)
	cafe.CoffeePrice = f.coffeePrice()
}

// coffeePrice prefers an explicit coffee_price, otherwise joins the amount
// with the currency symbol ("3.20 £").
func (f *cafeForm) coffeePrice() *string {
	price := f.CoffeePrice
	if price == "" && f.CoffeePriceNumber != "" {
		price = strings.TrimSpace(f.CoffeePriceNumber + " " + f.CurrencySymbol)
	}
	if price == "" {
		return nil
	}
	return &price
}

// checked reads a checkbox or spreadsheet flag: "on", "yes", "true" and any
// other non-empty value count as set; "", "no", "off", "false" and "0" do not.
func checked(v string) bool {
	v = strings.TrimSpace(v)
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	switch strings.ToLower(v) {
	case "", "no", "n", "off":
		return false
	}
	return true
}

func cafeID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func notFoundJSON(c *gin.Context, key, message string) {
	c.JSON(http.StatusNotFound, gin.H{
		key: gin.H{"error": gin.H{"Not Found": message}},
	})
}

func (cc *CafeController) Home(c *gin.Context) {
	utils.RenderHTML(c, http.StatusOK, "index.html", gin.H{"title": "Cafes"})
}

func (cc *CafeController) APIInfo(c *gin.Context) {
	utils.RenderHTML(c, http.StatusOK, "api-info.html", gin.H{"title": "API"})
}

func (cc *CafeController) GetRandom(c *gin.Context) {
	cafe, err := cc.Cafes.Random(c.Request.Context())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			notFoundJSON(c, "cafe", noCafesMessage)
			return
		}
		log.Printf("Failed to pick a random cafe: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cafe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cafe": cafe.Response()})
}

func (cc *CafeController) GetAll(c *gin.Context) {
	cafes, err := cc.Cafes.List(c.Request.Context())
	cc.respondList(c, cafes, err, noCafesMessage)
}

func (cc *CafeController) SearchByLocation(c *gin.Context) {
	cafes, err := cc.Cafes.SearchByLocation(c.Request.Context(), c.Query("loc"))
	cc.respondList(c, cafes, err, noLocationMessage)
}

func (cc *CafeController) SearchByName(c *gin.Context) {
	cafes, err := cc.Cafes.SearchByName(c.Request.Context(), c.Query("name"))
	cc.respondList(c, cafes, err, noNameMatchMessage)
}

func (cc *CafeController) respondList(c *gin.Context, cafes []model.Cafe, err error, emptyMessage string) {
	if err != nil {
		log.Printf("Failed to fetch cafes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cafes"})
		return
	}
	if len(cafes) == 0 {
		notFoundJSON(c, "cafes", emptyMessage)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cafes": model.CafeResponses(cafes)})
}

func (cc *CafeController) ShowAddCafe(c *gin.Context) {
	utils.RenderHTML(c, http.StatusOK, "add.html", gin.H{"title": "Add a cafe"})
}

func (cc *CafeController) AddCafe(c *gin.Context) {
	var form cafeForm
	if err := c.ShouldBind(&form); err != nil || !form.normalize() {
		utils.AddFlash(c, "warning", missingFieldsNotice)
		c.Redirect(http.StatusFound, "/add-cafe")
		return
	}

	author := utils.CurrentUser(c)
	cafe := &model.Cafe{AuthorID: &author.ID}
	form.apply(cafe)

	if err := cc.Cafes.Create(c.Request.Context(), cafe); err != nil {
		if errors.Is(err, repository.ErrCafeNameTaken) {
			utils.AddFlash(c, "warning", fmt.Sprintf("Sorry, a cafe with the name %s already exists.", cafe.Name))
			c.Redirect(http.StatusFound, "/add-cafe")
			return
		}
		log.Printf("Failed to create cafe %q: %v", cafe.Name, err)
		utils.RenderError(c, http.StatusInternalServerError, "Failed to save the cafe")
		return
	}
	log.Printf("Cafe %d %q posted by user %d", cafe.ID, cafe.Name, author.ID)

	utils.AddFlash(c, "success", fmt.Sprintf("Cafe %s have been posted.", cafe.Name))
	c.Redirect(http.StatusFound, "/")
}

// editableCafe loads the cafe named in the path and checks that the current
// user may change it. It writes the error response itself.
func (cc *CafeController) editableCafe(c *gin.Context) (*model.Cafe, bool) {
	id, ok := cafeID(c)
	if !ok {
		utils.RenderError(c, http.StatusNotFound, "Cafe not found")
		return nil, false
	}

	cafe, err := cc.Cafes.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.RenderError(c, http.StatusNotFound, "Cafe not found")
		} else {
			log.Printf("Failed to fetch cafe %d: %v", id, err)
			utils.RenderError(c, http.StatusInternalServerError, "Failed to fetch cafe")
		}
		return nil, false
	}

	if !cafe.EditableBy(utils.CurrentUser(c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to edit this cafe"})
		c.Abort()
		return nil, false
	}
	return cafe, true
}

func (cc *CafeController) ShowEditCafe(c *gin.Context) {
	cafe, ok := cc.editableCafe(c)
	if !ok {
		return
	}
	utils.RenderHTML(c, http.StatusOK, "edit.html", gin.H{"title": "Edit " + cafe.Name, "cafe": cafe})
}

func (cc *CafeController) UpdateCafe(c *gin.Context) {
	cafe, ok := cc.editableCafe(c)
	if !ok {
		return
	}

	var form cafeForm
	if err := c.ShouldBind(&form); err != nil || !form.normalize() {
		utils.AddFlash(c, "warning", missingFieldsNotice)
		utils.RenderHTML(c, http.StatusOK, "edit.html", gin.H{"title": "Edit " + cafe.Name, "cafe": cafe})
		return
	}

	updated := *cafe
	form.apply(&updated)
	// Only an explicit coffee_price field clears the stored price.
	if updated.CoffeePrice == nil {
		if _, posted := c.GetPostForm("coffee_price"); !posted {
			updated.CoffeePrice = cafe.CoffeePrice
		}
	}

	if err := cc.Cafes.Update(c.Request.Context(), &updated); err != nil {
		switch {
		case errors.Is(err, repository.ErrCafeNameTaken):
			utils.AddFlash(c, "warning", fmt.Sprintf("Sorry, a cafe with the name %s already exists.", updated.Name))
			utils.RenderHTML(c, http.StatusOK, "edit.html", gin.H{"title": "Edit " + cafe.Name, "cafe": cafe})
		case errors.Is(err, repository.ErrNotFound):
			utils.RenderError(c, http.StatusNotFound, "Cafe not found")
		default:
			log.Printf("Failed to update cafe %d: %v", cafe.ID, err)
			utils.RenderError(c, http.StatusInternalServerError, "Failed to update the cafe")
		}
		return
	}

	utils.AddFlash(c, "success", fmt.Sprintf("Cafe %s have been updated.", updated.Name))
	c.Redirect(http.StatusFound, "/")
}

// DeleteCafe removes a cafe reported as closed. Admin only.
func (cc *CafeController) DeleteCafe(c *gin.Context) {
	id, ok := cafeID(c)
	if ok {
		err := cc.Cafes.Delete(c.Request.Context(), id)
		if err == nil {
			log.Printf("Cafe %d deleted by user %d", id, utils.CurrentUser(c).ID)
			utils.AddFlash(c, "success", "Successfully deleted the cafe from the database.")
			c.Redirect(http.StatusFound, "/")
			return
		}
		if !errors.Is(err, repository.ErrNotFound) {
			log.Printf("Failed to delete cafe %d: %v", id, err)
			utils.RenderError(c, http.StatusInternalServerError, "Failed to delete the cafe")
			return
		}
	}

	utils.AddFlash(c, "warning", "Sorry a cafe with that id was not found in the database.")
	c.Redirect(http.StatusFound, "/")
}
