package farefinder

const AirportsAPI = "https://www.ryanair.com/api/views/locate/5/airports/en/active"
const FaresAPI = "https://www.ryanair.com/api/farfnd/3/oneWayFares"

const DefaultUserAgent = "Mozilla/5.0"
const DefaultLanguage = "en"
const DefaultMarket = "de"
const DefaultCurrency = "EUR"
